package callback

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/streamcheckout/internal/domain"
	"github.com/jafarshop/streamcheckout/internal/streampay"
)

// Verification is what the gateway says about the invoice named in a redirect
type Verification struct {
	Checked   bool   `json:"checked"`
	Verified  bool   `json:"verified"`
	InvoiceID string `json:"invoice_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Currency  string `json:"currency,omitempty"`
}

// Label is a short text for the callback page
func (v Verification) Label() string {
	switch {
	case !v.Checked:
		return ""
	case !v.Verified:
		return "unverified"
	default:
		return "verified: " + v.Status
	}
}

// Verifier looks the invoice up server side
type Verifier struct {
	gateway streampay.Gateway
	logger  *zap.Logger
}

func NewVerifier(gateway streampay.Gateway, logger *zap.Logger) *Verifier {
	return &Verifier{
		gateway: gateway,
		logger:  logger,
	}
}

// Verify fetches the invoice when the redirect names one. A lookup failure
// is logged and reported as unverified, never returned.
func (v *Verifier) Verify(ctx context.Context, p domain.CallbackParams) Verification {
	invoiceID := strings.TrimSpace(value(p.InvoiceID))
	if invoiceID == "" {
		return Verification{}
	}

	result := Verification{Checked: true, InvoiceID: invoiceID}

	invoice, err := v.gateway.GetInvoice(ctx, invoiceID)
	if err != nil {
		v.logger.Warn("Invoice verification failed",
			zap.String("invoice_id", invoiceID),
			zap.Error(err),
		)
		return result
	}

	result.Verified = true
	result.Status = invoice.Status
	result.Amount = string(invoice.Amount)
	result.Currency = invoice.Currency
	return result
}
