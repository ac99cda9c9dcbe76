package service

import (
	"github.com/jafarshop/streamcheckout/internal/domain"
	"github.com/jafarshop/streamcheckout/internal/streampay"
)

// QuoteRequest represents the pricing quote payload
type QuoteRequest struct {
	ProductID  string `json:"product_id" binding:"required"`
	CouponCode string `json:"coupon_code"`
}

// QuoteResponse is the priced product with the applied discount
type QuoteResponse struct {
	Product         domain.Product     `json:"product"`
	DiscountPercent int                `json:"discount_percent"`
	Totals          domain.PriceTotals `json:"totals"`
	Warnings        []string           `json:"warnings,omitempty"`
}

// CheckoutRequest represents the one-shot checkout payload
type CheckoutRequest struct {
	ProductID  string `json:"product_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	CouponCode string `json:"coupon_code"`
	ConsumerID string `json:"organization_consumer_id"`
}

// Form returns the customer details of the request
func (r CheckoutRequest) Form() domain.CheckoutForm {
	return domain.CheckoutForm{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		CouponCode: r.CouponCode,
	}
}

// CheckoutResponse is returned once a payment link exists
type CheckoutResponse struct {
	QuoteResponse
	GatewayProductID string                 `json:"gateway_product_id"`
	PaymentLink      *streampay.PaymentLink `json:"payment_link"`
	Mock             bool                   `json:"mock"`
}
