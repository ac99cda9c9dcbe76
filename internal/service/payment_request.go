package service

import (
	"fmt"

	"github.com/jafarshop/streamcheckout/internal/domain"
	"github.com/jafarshop/streamcheckout/internal/streampay"
)

const (
	// DefaultMaxPayments is how many times an open payment link may be paid
	DefaultMaxPayments = 100
	// ItemQuantity is fixed; a checkout always buys one subscription
	ItemQuantity = 1
)

// PaymentLinkInput is everything needed to describe a payment link
type PaymentLinkInput struct {
	Product         domain.Product
	ProductID       string
	Form            domain.CheckoutForm
	DiscountPercent int
	Totals          domain.PriceTotals
	SuccessURL      string
	FailureURL      string
	// ConsumerID restricts the link to a single Stream Pay consumer
	ConsumerID string
}

// BuildPaymentLinkRequest assembles the gateway request for a checkout.
// ProductID falls back to the catalog product ID when empty.
func BuildPaymentLinkRequest(in PaymentLinkInput) streampay.PaymentLinkRequest {
	productID := in.ProductID
	if productID == "" {
		productID = in.Product.ID
	}

	maxPayments := DefaultMaxPayments
	if in.ConsumerID != "" {
		maxPayments = 1
	}

	return streampay.PaymentLinkRequest{
		Name:                   in.Product.Name,
		Description:            fmt.Sprintf("Payment for %s", in.Product.Name),
		Currency:               streampay.DefaultCurrency,
		ContactInformationType: streampay.ContactPhone,
		MaxNumberOfPayments:    maxPayments,
		SuccessRedirectURL:     in.SuccessURL,
		FailureRedirectURL:     in.FailureURL,
		Items: []streampay.PaymentLinkItem{
			{ProductID: productID, Quantity: ItemQuantity},
		},
		CustomMetadata: streampay.CustomMetadata{
			CustomerName:   in.Form.Name,
			CustomerEmail:  in.Form.Email,
			CustomerPhone:  in.Form.Phone,
			OriginalAmount: in.Totals.Subtotal.InexactFloat64(),
			VATAmount:      in.Totals.VAT.InexactFloat64(),
			Discount:       in.DiscountPercent,
			DiscountAmount: in.Totals.Discount.InexactFloat64(),
			TotalAmount:    in.Totals.Total.InexactFloat64(),
			CouponCode:     in.Form.CouponCode,
		},
		OrganizationConsumerID: in.ConsumerID,
	}
}
