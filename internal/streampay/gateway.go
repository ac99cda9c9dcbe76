package streampay

import (
	"context"

	"go.uber.org/zap"

	"github.com/jafarshop/streamcheckout/internal/config"
)

// DefaultCurrency is used when a request leaves the currency empty
const DefaultCurrency = "SAR"

// Gateway is the set of Stream Pay operations the checkout relies on
type Gateway interface {
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLink, error)
	CreateConsumer(ctx context.Context, req ConsumerRequest) (*Consumer, error)
	GetInvoice(ctx context.Context, invoiceID string) (*Invoice, error)
	// Ping checks that the API answers at all and returns the HTTP status seen
	Ping(ctx context.Context) (int, error)
	// MockMode reports whether results are fabricated locally
	MockMode() bool
}

// NewGateway picks the real client, or the demo client when credentials are missing
func NewGateway(cfg config.StreamPayConfig, logger *zap.Logger) Gateway {
	if cfg.MockMode() {
		logger.Warn("Stream Pay credentials missing, running in demo mode")
		return NewMockClient(cfg.MockDelay, logger)
	}
	return NewClient(cfg, logger)
}
