package checkout

import (
	"strings"
	"time"

	"github.com/jafarshop/streamcheckout/internal/catalog"
	"github.com/jafarshop/streamcheckout/internal/domain"
	"github.com/jafarshop/streamcheckout/internal/pricing"
	apperrors "github.com/jafarshop/streamcheckout/pkg/errors"
)

const (
	// NoticeTTL is how long a transient notice (invalid coupon) stays visible
	NoticeTTL = 3 * time.Second
	// RedirectDelay is how long the success step waits before sending the browser to the gateway
	RedirectDelay = 2 * time.Second
)

// Notice is a message that disappears on its own
type Notice struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Visible reports whether the notice should still be shown at now
func (n *Notice) Visible(now time.Time) bool {
	return n != nil && n.Message != "" && now.Before(n.ExpiresAt)
}

// Session is one visitor's checkout
type Session struct {
	ID               string              `json:"id"`
	Step             domain.CheckoutStep `json:"step"`
	ProductID        string              `json:"product_id"`
	Form             domain.CheckoutForm `json:"form"`
	CouponCode       string              `json:"coupon_code"`
	DiscountPercent  int                 `json:"discount_percent"`
	Error            string              `json:"error,omitempty"`
	Notice           *Notice             `json:"notice,omitempty"`
	PaymentURL       string              `json:"payment_url,omitempty"`
	Mock             bool                `json:"mock,omitempty"`
	GatewayProductID string              `json:"gateway_product_id,omitempty"`
}

// NewSession starts a checkout on the default product
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		Step:      domain.StepProduct,
		ProductID: catalog.Default().ID,
	}
}

// Product returns the selected catalog product, or the default one
func (s *Session) Product() domain.Product {
	if p, ok := catalog.ByID(s.ProductID); ok {
		return p
	}
	return catalog.Default()
}

// Totals are recomputed from the selection and the applied discount
func (s *Session) Totals() domain.PriceTotals {
	return pricing.Calculate(s.Product().Price, s.DiscountPercent)
}

func (s *Session) transition(to domain.CheckoutStep) error {
	if !s.Step.CanTransitionTo(to) {
		return &apperrors.ErrInvalidStateTransition{From: string(s.Step), To: string(to)}
	}
	s.Step = to
	return nil
}

func (s *Session) requireStep(step domain.CheckoutStep, action string) error {
	if s.Step != step {
		return &apperrors.ErrInvalidStateTransition{From: string(s.Step), To: action}
	}
	return nil
}

// SelectProduct changes the selection while on the product step
func (s *Session) SelectProduct(productID string) error {
	if err := s.requireStep(domain.StepProduct, "select_product"); err != nil {
		return err
	}
	if _, ok := catalog.ByID(productID); !ok {
		return &apperrors.ErrNotFound{Resource: "product", ID: productID}
	}
	if productID != s.ProductID {
		s.GatewayProductID = ""
	}
	s.ProductID = productID
	return nil
}

// ContinueToDetails moves from the product step to the form
func (s *Session) ContinueToDetails() error {
	if err := s.transition(domain.StepForm); err != nil {
		return err
	}
	s.Error = ""
	return nil
}

// UpdateForm stores the customer details typed so far
func (s *Session) UpdateForm(form domain.CheckoutForm) error {
	if err := s.requireStep(domain.StepForm, "update_form"); err != nil {
		return err
	}
	s.Form = form
	return nil
}

// ApplyCoupon validates code. An invalid code clears the discount and
// raises a notice that expires after NoticeTTL; it is not an error.
func (s *Session) ApplyCoupon(code string, now time.Time) error {
	if err := s.requireStep(domain.StepForm, "apply_coupon"); err != nil {
		return err
	}

	s.Form.CouponCode = code
	percent, err := pricing.ValidateCoupon(code)
	if err != nil {
		s.CouponCode = ""
		s.DiscountPercent = 0
		s.Notice = &Notice{Message: "Invalid coupon code", ExpiresAt: now.Add(NoticeTTL)}
		return nil
	}

	s.DiscountPercent = percent
	if percent > 0 {
		s.CouponCode = strings.ToUpper(code)
	} else {
		s.CouponCode = ""
	}
	s.Notice = nil
	return nil
}

// BeginProcessing validates the form and enters the processing step
func (s *Session) BeginProcessing() error {
	if err := s.requireStep(domain.StepForm, string(domain.StepProcessing)); err != nil {
		return err
	}
	if strings.TrimSpace(s.Form.Name) == "" {
		return &apperrors.ErrValidation{Field: "name", Message: "Full name is required"}
	}
	if strings.TrimSpace(s.Form.Email) == "" {
		return &apperrors.ErrValidation{Field: "email", Message: "Email is required"}
	}

	s.Error = ""
	s.PaymentURL = ""
	return s.transition(domain.StepProcessing)
}

// Fail returns to the form with a message, keeping everything entered
func (s *Session) Fail(message string) error {
	if err := s.requireStep(domain.StepProcessing, "fail"); err != nil {
		return err
	}
	if err := s.transition(domain.StepForm); err != nil {
		return err
	}
	s.Error = message
	return nil
}

// Succeed records the payment URL the browser is sent to
func (s *Session) Succeed(paymentURL string, mock bool) error {
	if paymentURL == "" {
		return &apperrors.ErrValidation{Field: "payment_url", Message: "payment URL is empty"}
	}
	if err := s.transition(domain.StepSuccess); err != nil {
		return err
	}
	s.PaymentURL = paymentURL
	s.Mock = mock
	s.Error = ""
	return nil
}

// ChangeSelection goes back to the product step from any later step
func (s *Session) ChangeSelection() error {
	if s.Step == domain.StepProduct {
		return nil
	}
	if err := s.transition(domain.StepProduct); err != nil {
		return err
	}
	s.Error = ""
	s.PaymentURL = ""
	return nil
}
