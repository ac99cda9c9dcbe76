package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/streamcheckout/internal/api/middleware"
	"github.com/jafarshop/streamcheckout/internal/checkout"
	"github.com/jafarshop/streamcheckout/internal/config"
	"github.com/jafarshop/streamcheckout/internal/session"
)

// Page is shared by every HTML template
type Page struct {
	Title           string
	MockMode        bool
	RedirectURL     string
	RedirectSeconds int
}

// BaseURL is where the gateway sends the customer back to
func BaseURL(cfg *config.Config, c *gin.Context) string {
	if cfg.PublicBaseURL != "" {
		return cfg.PublicBaseURL
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + c.Request.Host
}

func redirectURLs(cfg *config.Config, c *gin.Context) (string, string) {
	base := BaseURL(cfg, c)
	return base + "/payment/success", base + "/payment/failure"
}

// withSession runs fn on the request's session and saves it afterwards
func withSession(store session.Store, logger *zap.Logger, c *gin.Context, fn func(s *checkout.Session)) bool {
	s, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.String(http.StatusInternalServerError, "session unavailable")
		return false
	}

	fn(s)

	if err := store.Save(c.Request.Context(), s); err != nil {
		logger.Error("Failed to save session", zap.String("session_id", s.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, "internal error")
		return false
	}
	return true
}
