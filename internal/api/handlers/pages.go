package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/streamcheckout/internal/api/middleware"
	"github.com/jafarshop/streamcheckout/internal/callback"
	"github.com/jafarshop/streamcheckout/internal/catalog"
	"github.com/jafarshop/streamcheckout/internal/checkout"
	"github.com/jafarshop/streamcheckout/internal/config"
	"github.com/jafarshop/streamcheckout/internal/docs"
	"github.com/jafarshop/streamcheckout/internal/domain"
	"github.com/jafarshop/streamcheckout/internal/service"
	"github.com/jafarshop/streamcheckout/internal/session"
	apperrors "github.com/jafarshop/streamcheckout/pkg/errors"
)

type landingView struct {
	Page
	Products []domain.Product
}

type checkoutView struct {
	Page
	Step            domain.CheckoutStep
	Steps           []domain.CheckoutStep
	StepIndex       int
	Products        []domain.Product
	Product         domain.Product
	Form            domain.CheckoutForm
	DiscountPercent int
	Totals          domain.PriceTotals
	Error           string
	Notice          string
	PaymentURL      string
}

type callbackDetail struct {
	Label string
	Value string
}

type callbackView struct {
	Page
	Outcome      domain.PaymentOutcome
	IsMock       bool
	Verification callback.Verification
	Details      []callbackDetail
}

type docsView struct {
	Page
	Reference *docs.Reference
}

// HandleLanding handles GET /
func HandleLanding(svc *service.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "landing.html", landingView{
			Page:     Page{Title: "Subscriptions", MockMode: svc.MockMode()},
			Products: catalog.Products(),
		})
	}
}

// HandleCheckoutPage handles GET /checkout
func HandleCheckoutPage(svc *service.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.String(http.StatusInternalServerError, "session unavailable")
			return
		}
		renderCheckout(c, http.StatusOK, s, svc.MockMode())
	}
}

func renderCheckout(c *gin.Context, status int, s *checkout.Session, mock bool) {
	view := checkoutView{
		Page:            Page{Title: "Checkout", MockMode: mock},
		Step:            s.Step,
		Steps:           domain.Steps,
		StepIndex:       s.Step.Index(),
		Products:        catalog.Products(),
		Product:         s.Product(),
		Form:            s.Form,
		DiscountPercent: s.DiscountPercent,
		Totals:          s.Totals(),
		Error:           s.Error,
		PaymentURL:      s.PaymentURL,
	}
	if s.Notice.Visible(time.Now()) {
		view.Notice = s.Notice.Message
	}
	if s.Step == domain.StepSuccess {
		view.RedirectURL = s.PaymentURL
		view.RedirectSeconds = int(checkout.RedirectDelay / time.Second)
	}
	c.HTML(status, "checkout.html", view)
}

// transitionFailed answers a rejected wizard action
func transitionFailed(c *gin.Context, err error) {
	var transition *apperrors.ErrInvalidStateTransition
	var notFound *apperrors.ErrNotFound
	switch {
	case errors.As(err, &transition):
		c.Redirect(http.StatusSeeOther, "/checkout")
	case errors.As(err, &notFound):
		c.String(http.StatusNotFound, err.Error())
	default:
		c.String(http.StatusBadRequest, err.Error())
	}
}

// HandleSelectProduct handles POST /checkout/product
func HandleSelectProduct(store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.PostForm("product_id")

		var err error
		saved := withSession(store, logger, c, func(s *checkout.Session) {
			if s.Step != domain.StepProduct {
				if err = s.ChangeSelection(); err != nil {
					return
				}
			}
			err = s.SelectProduct(productID)
		})
		if !saved {
			return
		}
		if err != nil {
			transitionFailed(c, err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/checkout")
	}
}

// HandleContinue handles POST /checkout/details
func HandleContinue(store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var err error
		if !withSession(store, logger, c, func(s *checkout.Session) { err = s.ContinueToDetails() }) {
			return
		}
		if err != nil {
			transitionFailed(c, err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/checkout")
	}
}

// HandleApplyCoupon handles POST /checkout/coupon
func HandleApplyCoupon(store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form domain.CheckoutForm
		if err := c.ShouldBind(&form); err != nil {
			c.String(http.StatusUnprocessableEntity, "validation failed")
			return
		}

		var err error
		saved := withSession(store, logger, c, func(s *checkout.Session) {
			if err = s.UpdateForm(form); err != nil {
				return
			}
			err = s.ApplyCoupon(form.CouponCode, time.Now())
		})
		if !saved {
			return
		}
		if err != nil {
			transitionFailed(c, err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/checkout")
	}
}

// HandleSubmit handles POST /checkout/submit. The payment link is created
// synchronously; the browser then lands on the success step or back on the form.
func HandleSubmit(cfg *config.Config, svc *service.CheckoutService, store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.String(http.StatusInternalServerError, "session unavailable")
			return
		}

		var form domain.CheckoutForm
		if err := c.ShouldBind(&form); err != nil {
			c.String(http.StatusUnprocessableEntity, "validation failed")
			return
		}
		// the coupon is applied through its own action
		form.CouponCode = s.Form.CouponCode

		if err := s.UpdateForm(form); err != nil {
			transitionFailed(c, err)
			return
		}
		if err := s.BeginProcessing(); err != nil {
			var validation *apperrors.ErrValidation
			if !errors.As(err, &validation) {
				transitionFailed(c, err)
				return
			}
			s.Error = validation.Message
			if saveErr := store.Save(c.Request.Context(), s); saveErr != nil {
				logger.Error("Failed to save session", zap.Error(saveErr))
			}
			renderCheckout(c, http.StatusUnprocessableEntity, s, svc.MockMode())
			return
		}
		if err := store.Save(c.Request.Context(), s); err != nil {
			logger.Error("Failed to save session", zap.Error(err))
			c.String(http.StatusInternalServerError, "internal error")
			return
		}

		successURL, failureURL := redirectURLs(cfg, c)
		result, err := svc.Submit(c.Request.Context(), service.SubmitInput{
			Product:          s.Product(),
			Form:             s.Form,
			DiscountPercent:  s.DiscountPercent,
			GatewayProductID: s.GatewayProductID,
			SuccessURL:       successURL,
			FailureURL:       failureURL,
		})
		settleSubmission(s, result, err, logger)

		if err := store.Save(c.Request.Context(), s); err != nil {
			logger.Error("Failed to save session", zap.Error(err))
			c.String(http.StatusInternalServerError, "internal error")
			return
		}
		c.Redirect(http.StatusSeeOther, "/checkout")
	}
}

// settleSubmission moves a processing session to success or back to the form
func settleSubmission(s *checkout.Session, result *service.SubmitResult, submitErr error, logger *zap.Logger) {
	var err error
	if submitErr != nil {
		logger.Error("Payment creation failed", zap.String("session_id", s.ID), zap.Error(submitErr))
		err = s.Fail(service.UserMessage(submitErr))
	} else {
		s.GatewayProductID = result.GatewayProductID
		err = s.Succeed(result.Link.URL, result.Link.Mock)
	}
	if err != nil {
		logger.Error("Failed to record checkout outcome",
			zap.String("session_id", s.ID),
			zap.String("step", string(s.Step)),
			zap.Error(err),
		)
	}
}

// HandleChangeSelection handles POST /checkout/change
func HandleChangeSelection(store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var err error
		if !withSession(store, logger, c, func(s *checkout.Session) { err = s.ChangeSelection() }) {
			return
		}
		if err != nil {
			transitionFailed(c, err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/checkout")
	}
}

// HandlePaymentCallback handles GET /payment/success and /payment/failure.
// Which route was hit does not matter; the parameters decide the outcome.
func HandlePaymentCallback(svc *service.CheckoutService, verifier *callback.Verifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := callback.Parse(c.Request.URL.Query())
		outcome := callback.Classify(params)
		verification := verifier.Verify(c.Request.Context(), params)

		logger.Info("Payment callback",
			zap.String("path", c.Request.URL.Path),
			zap.String("outcome", string(outcome)),
			zap.String("payment_link_id", callback.Value(params.PaymentLinkID)),
			zap.String("invoice_id", callback.Value(params.InvoiceID)),
		)

		title := "Payment cancelled"
		switch outcome {
		case domain.OutcomePaid:
			title = "Payment successful"
		case domain.OutcomeFailed:
			title = "Payment failed"
		}

		c.HTML(http.StatusOK, "callback.html", callbackView{
			Page:         Page{Title: title, MockMode: svc.MockMode()},
			Outcome:      outcome,
			IsMock:       callback.IsMock(params),
			Verification: verification,
			Details:      callbackDetails(params),
		})
	}
}

func callbackDetails(p domain.CallbackParams) []callbackDetail {
	fields := []struct {
		label string
		value *string
	}{
		{"Payment ID", p.PaymentID},
		{"Payment link ID", p.PaymentLinkID},
		{"Invoice ID", p.InvoiceID},
		{"Reference", p.ID},
		{"Status", p.Status},
		{"Message", p.Message},
		{"Consent ID", p.ConsentID},
		{"Consumer ID", p.OrganizationConsumerID},
		{"Login method", p.LoginMethod},
	}

	var out []callbackDetail
	for _, f := range fields {
		if f.value != nil && *f.value != "" {
			out = append(out, callbackDetail{Label: f.label, Value: *f.value})
		}
	}
	return out
}

// HandleDocsPage handles GET /docs/stream-pay
func HandleDocsPage(ref *docs.Reference, svc *service.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "docs.html", docsView{
			Page:      Page{Title: "Stream Pay API", MockMode: svc.MockMode()},
			Reference: ref,
		})
	}
}
