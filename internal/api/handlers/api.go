package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/streamcheckout/internal/callback"
	"github.com/jafarshop/streamcheckout/internal/catalog"
	"github.com/jafarshop/streamcheckout/internal/config"
	"github.com/jafarshop/streamcheckout/internal/docs"
	"github.com/jafarshop/streamcheckout/internal/service"
	"github.com/jafarshop/streamcheckout/internal/streampay"
)

// pingTimeout bounds the connection test
const pingTimeout = 10 * time.Second

// StatusResponse describes the gateway configuration as seen by the server
type StatusResponse struct {
	MockMode     bool   `json:"mock_mode"`
	APIURL       string `json:"api_url"`
	HasAPIKey    bool   `json:"has_api_key"`
	HasSecretKey bool   `json:"has_secret_key"`
	Message      string `json:"message"`
	Probe        *Probe `json:"probe,omitempty"`
}

// Probe is the result of a live connection test
type Probe struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// CreateProductRequest is the payload of POST /api/v1/products
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	UnitPrice   string `json:"unit_price" binding:"required,numeric"`
	Currency    string `json:"currency"`
}

func validationFailed(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "validation failed",
		"details": err.Error(),
	})
}

func gatewayFailed(c *gin.Context, logger *zap.Logger, msg string, err error) {
	logger.Error(msg, zap.Error(err))
	c.JSON(service.StatusCode(err), gin.H{"error": service.UserMessage(err)})
}

// HandleStatus handles GET /api/v1/status
func HandleStatus(cfg *config.Config, gateway streampay.Gateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := StatusResponse{
			MockMode:     gateway.MockMode(),
			APIURL:       cfg.StreamPay.APIURL,
			HasAPIKey:    cfg.StreamPay.APIKey != "",
			HasSecretKey: cfg.StreamPay.SecretKey != "",
		}
		if resp.MockMode {
			resp.Message = streampay.DemoModeMessage
		} else {
			resp.Message = "Attempting to connect to Stream Pay API"
		}

		if probe, _ := strconv.ParseBool(c.Query("probe")); probe {
			ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
			defer cancel()

			status, err := gateway.Ping(ctx)
			resp.Probe = &Probe{StatusCode: status, Success: err == nil}
			if err != nil {
				logger.Warn("Stream Pay connection test failed", zap.Error(err))
				resp.Probe.Error = service.UserMessage(err)
			} else if !resp.MockMode {
				resp.Message = "Connected to Stream Pay API"
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}

// HandleListProducts handles GET /api/v1/products
func HandleListProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"products": catalog.Products()})
	}
}

// HandleQuote handles POST /api/v1/pricing/quote
func HandleQuote(svc *service.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.QuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			validationFailed(c, err)
			return
		}

		quote, err := svc.Quote(req)
		if err != nil {
			c.JSON(service.StatusCode(err), gin.H{"error": service.UserMessage(err)})
			return
		}
		c.JSON(http.StatusOK, quote)
	}
}

// HandleCheckout handles POST /api/v1/checkout
func HandleCheckout(cfg *config.Config, svc *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			validationFailed(c, err)
			return
		}

		successURL, failureURL := redirectURLs(cfg, c)
		resp, err := svc.Checkout(c.Request.Context(), req, successURL, failureURL)
		if err != nil {
			gatewayFailed(c, logger, "Checkout failed", err)
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// HandleCreateProduct handles POST /api/v1/products
func HandleCreateProduct(gateway streampay.Gateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			validationFailed(c, err)
			return
		}
		currency := req.Currency
		if currency == "" {
			currency = streampay.DefaultCurrency
		}

		product, err := gateway.CreateProduct(c.Request.Context(), streampay.ProductRequest{
			Name:        req.Name,
			Description: req.Description,
			UnitPrice:   req.UnitPrice,
			Currency:    currency,
		})
		if err != nil {
			gatewayFailed(c, logger, "Failed to create product", err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// HandleCreateConsumer handles POST /api/v1/consumers
func HandleCreateConsumer(gateway streampay.Gateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req streampay.ConsumerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			validationFailed(c, err)
			return
		}

		consumer, err := gateway.CreateConsumer(c.Request.Context(), req)
		if err != nil {
			gatewayFailed(c, logger, "Failed to create consumer", err)
			return
		}
		c.JSON(http.StatusCreated, consumer)
	}
}

// HandleGetInvoice handles GET /api/v1/invoices/:id
func HandleGetInvoice(gateway streampay.Gateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		invoice, err := gateway.GetInvoice(c.Request.Context(), c.Param("id"))
		if err != nil {
			gatewayFailed(c, logger, "Failed to get invoice", err)
			return
		}
		c.JSON(http.StatusOK, invoice)
	}
}

// HandleCallback handles GET /api/v1/callback
func HandleCallback(verifier *callback.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := callback.Parse(c.Request.URL.Query())
		c.JSON(http.StatusOK, gin.H{
			"params":       params,
			"outcome":      callback.Classify(params),
			"mock":         callback.IsMock(params),
			"verification": verifier.Verify(c.Request.Context(), params),
		})
	}
}

// HandleDocs handles GET /api/v1/docs
func HandleDocs(ref *docs.Reference) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.Query("endpoint"); key != "" {
			endpoint, ok := ref.Find(key)
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
				return
			}
			c.JSON(http.StatusOK, endpoint)
			return
		}
		c.JSON(http.StatusOK, ref)
	}
}
