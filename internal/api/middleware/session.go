package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/streamcheckout/internal/checkout"
	"github.com/jafarshop/streamcheckout/internal/session"
)

const (
	// SessionCookie carries the checkout session ID
	SessionCookie = "checkout_session"

	sessionContextKey = "checkout_session"
)

// SessionMiddleware loads the visitor's checkout session, starting a new one
// when the cookie is missing or the session expired
func SessionMiddleware(store session.Store, ttl time.Duration, secure bool, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var s *checkout.Session

		if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
			s, err = store.Get(c.Request.Context(), id)
			if err != nil && !errors.Is(err, session.ErrSessionNotFound) {
				logger.Error("Failed to load session", zap.String("session_id", id), zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
		}

		if s == nil {
			s = checkout.NewSession(session.NewID())
			if err := store.Save(c.Request.Context(), s); err != nil {
				logger.Error("Failed to create session", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, s.ID, int(ttl.Seconds()), "/", "", secure, true)
		c.Set(sessionContextKey, s)
		c.Next()
	}
}

// GetSessionFromContext retrieves the checkout session from context
func GetSessionFromContext(c *gin.Context) (*checkout.Session, bool) {
	s, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	cs, ok := s.(*checkout.Session)
	return cs, ok
}
