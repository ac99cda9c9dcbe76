package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jafarshop/streamcheckout/internal/catalog"
	"github.com/jafarshop/streamcheckout/internal/domain"
	"github.com/jafarshop/streamcheckout/internal/pricing"
	"github.com/jafarshop/streamcheckout/internal/streampay"
	apperrors "github.com/jafarshop/streamcheckout/pkg/errors"
)

// CheckoutService turns a priced selection into a Stream Pay payment link
type CheckoutService struct {
	gateway streampay.Gateway
	logger  *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(gateway streampay.Gateway, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		gateway: gateway,
		logger:  logger,
	}
}

// MockMode reports whether the underlying gateway fabricates results
func (s *CheckoutService) MockMode() bool {
	return s.gateway.MockMode()
}

// SubmitInput describes one payment attempt
type SubmitInput struct {
	Product         domain.Product
	Form            domain.CheckoutForm
	DiscountPercent int
	// GatewayProductID is a product already created for this checkout, if any
	GatewayProductID string
	SuccessURL       string
	FailureURL       string
	ConsumerID       string
}

// SubmitResult is the outcome of a successful submission
type SubmitResult struct {
	Link             *streampay.PaymentLink
	GatewayProductID string
	Totals           domain.PriceTotals
	Warnings         []string
}

// Submit creates the gateway product when needed, then the payment link.
// A failed product creation is tolerated and the catalog product ID is used.
func (s *CheckoutService) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	totals := pricing.Calculate(in.Product.Price, in.DiscountPercent)
	result := &SubmitResult{
		GatewayProductID: in.GatewayProductID,
		Totals:           totals,
	}

	productID := in.GatewayProductID
	if productID == "" {
		productID = in.Product.ID
	}

	if !s.gateway.MockMode() && in.GatewayProductID == "" {
		product, err := s.gateway.CreateProduct(ctx, streampay.ProductRequest{
			Name:        in.Product.Name,
			Description: in.Product.Description,
			UnitPrice:   totals.Total.StringFixed(2),
			Currency:    streampay.DefaultCurrency,
		})
		if err != nil {
			s.logger.Warn("Product creation failed, using catalog product ID",
				zap.String("product_id", in.Product.ID),
				zap.Error(err),
			)
			result.Warnings = append(result.Warnings, "product creation failed, catalog product ID used")
		} else {
			productID = product.ID
			result.GatewayProductID = product.ID
		}
	}

	req := BuildPaymentLinkRequest(PaymentLinkInput{
		Product:         in.Product,
		ProductID:       productID,
		Form:            in.Form,
		DiscountPercent: in.DiscountPercent,
		Totals:          totals,
		SuccessURL:      in.SuccessURL,
		FailureURL:      in.FailureURL,
		ConsumerID:      in.ConsumerID,
	})

	link, err := s.gateway.CreatePaymentLink(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}
	if link.URL == "" {
		return nil, streampay.ErrNoRedirectURL
	}

	s.logger.Info("Payment link created",
		zap.String("payment_link_id", link.ID),
		zap.String("product_id", productID),
		zap.String("total", totals.Total.StringFixed(2)),
		zap.Bool("mock", link.Mock),
	)

	result.Link = link
	return result, nil
}

// Quote prices a catalog product with an optional coupon.
// An invalid coupon is reported as a warning, not an error.
func (s *CheckoutService) Quote(req QuoteRequest) (*QuoteResponse, error) {
	product, ok := catalog.ByID(req.ProductID)
	if !ok {
		return nil, &apperrors.ErrNotFound{Resource: "product", ID: req.ProductID}
	}

	resp := &QuoteResponse{Product: product}

	percent, err := pricing.ValidateCoupon(req.CouponCode)
	if err != nil {
		if !errors.Is(err, pricing.ErrInvalidCoupon) {
			return nil, err
		}
		resp.Warnings = append(resp.Warnings, UserMessage(err))
	}

	resp.DiscountPercent = percent
	resp.Totals = pricing.Calculate(product.Price, percent)
	return resp, nil
}

// Checkout runs the whole flow for a JSON client in one call
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest, successURL, failureURL string) (*CheckoutResponse, error) {
	quote, err := s.Quote(QuoteRequest{ProductID: req.ProductID, CouponCode: req.CouponCode})
	if err != nil {
		return nil, err
	}

	form := req.Form()
	if quote.DiscountPercent == 0 {
		form.CouponCode = ""
	}

	result, err := s.Submit(ctx, SubmitInput{
		Product:         quote.Product,
		Form:            form,
		DiscountPercent: quote.DiscountPercent,
		SuccessURL:      successURL,
		FailureURL:      failureURL,
		ConsumerID:      req.ConsumerID,
	})
	if err != nil {
		return nil, err
	}

	quote.Warnings = append(quote.Warnings, result.Warnings...)
	return &CheckoutResponse{
		QuoteResponse:    *quote,
		GatewayProductID: result.GatewayProductID,
		PaymentLink:      result.Link,
		Mock:             result.Link.Mock,
	}, nil
}
