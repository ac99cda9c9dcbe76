package api

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/streamcheckout/internal/api/handlers"
	"github.com/jafarshop/streamcheckout/internal/api/middleware"
	"github.com/jafarshop/streamcheckout/internal/callback"
	"github.com/jafarshop/streamcheckout/internal/config"
	"github.com/jafarshop/streamcheckout/internal/docs"
	"github.com/jafarshop/streamcheckout/internal/service"
	"github.com/jafarshop/streamcheckout/internal/session"
	"github.com/jafarshop/streamcheckout/internal/streampay"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return fmt.Sprintf("SAR %s", d.StringFixed(2))
	},
	"inc": func(i int) int { return i + 1 },
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, gateway streampay.Gateway, store session.Store, logger *zap.Logger) (*gin.Engine, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	ref, err := docs.Load()
	if err != nil {
		return nil, err
	}

	svc := service.NewCheckoutService(gateway, logger)
	verifier := callback.NewVerifier(gateway, logger)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "mock_mode": gateway.MockMode()})
	})

	router.GET("/", handlers.HandleLanding(svc))
	router.GET("/docs/stream-pay", handlers.HandleDocsPage(ref, svc))
	router.GET("/payment/success", handlers.HandlePaymentCallback(svc, verifier, logger))
	router.GET("/payment/failure", handlers.HandlePaymentCallback(svc, verifier, logger))

	// Checkout wizard (cookie session)
	wizard := router.Group("/checkout")
	wizard.Use(middleware.SessionMiddleware(store, cfg.Session.TTL, cfg.Environment == "production", logger))
	{
		wizard.GET("", handlers.HandleCheckoutPage(svc))
		wizard.POST("/product", handlers.HandleSelectProduct(store, logger))
		wizard.POST("/details", handlers.HandleContinue(store, logger))
		wizard.POST("/coupon", handlers.HandleApplyCoupon(store, logger))
		wizard.POST("/submit", handlers.HandleSubmit(cfg, svc, store, logger))
		wizard.POST("/change", handlers.HandleChangeSelection(store, logger))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", handlers.HandleStatus(cfg, gateway, logger))
		v1.GET("/products", handlers.HandleListProducts())
		v1.POST("/products", handlers.HandleCreateProduct(gateway, logger))
		v1.POST("/pricing/quote", handlers.HandleQuote(svc))
		v1.POST("/checkout", handlers.HandleCheckout(cfg, svc, logger))
		v1.POST("/consumers", handlers.HandleCreateConsumer(gateway, logger))
		v1.GET("/invoices/:id", handlers.HandleGetInvoice(gateway, logger))
		v1.GET("/callback", handlers.HandleCallback(verifier))
		v1.GET("/docs", handlers.HandleDocs(ref))
	}

	return router, nil
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
