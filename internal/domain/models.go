package domain

import (
	"github.com/shopspring/decimal"
)

// Product represents a catalog entry backed by a Stream Pay product UUID
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Popular     bool            `json:"popular"`
}

// CheckoutForm holds the customer details collected in the form step
type CheckoutForm struct {
	Name       string `json:"name" form:"name"`
	Email      string `json:"email" form:"email"`
	Phone      string `json:"phone" form:"phone"`
	CouponCode string `json:"coupon_code" form:"coupon_code"`
}

// PriceTotals is derived from a product price and a discount percentage
type PriceTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	VAT      decimal.Decimal `json:"vat"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// CallbackParams are the query parameters the gateway appends to redirect URLs.
// A nil field means the key was not present.
type CallbackParams struct {
	ID                     *string `json:"id,omitempty"`
	Status                 *string `json:"status,omitempty"`
	Message                *string `json:"message,omitempty"`
	PaymentID              *string `json:"payment_id,omitempty"`
	PaymentLinkID          *string `json:"payment_link_id,omitempty"`
	InvoiceID              *string `json:"invoice_id,omitempty"`
	ConsentID              *string `json:"consent_id,omitempty"`
	OrganizationConsumerID *string `json:"organization_consumer_id,omitempty"`
	LoginMethod            *string `json:"login_method,omitempty"`
	Mock                   *string `json:"mock,omitempty"`
}
