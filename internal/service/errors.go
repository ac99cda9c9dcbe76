package service

import (
	"errors"
	"net/http"

	"github.com/jafarshop/streamcheckout/internal/pricing"
	"github.com/jafarshop/streamcheckout/internal/streampay"
	apperrors "github.com/jafarshop/streamcheckout/pkg/errors"
)

// UserMessage turns a checkout error into text that can be shown to a customer
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *streampay.APIError
	var validation *apperrors.ErrValidation
	var notFound *apperrors.ErrNotFound

	switch {
	case errors.Is(err, streampay.ErrTimeout):
		return "Request timeout - Stream Pay took too long to respond. Please try again."
	case errors.Is(err, streampay.ErrUnreachable):
		return "Cannot reach Stream Pay. Please check the API URL, your internet connection, and that the service is up."
	case errors.Is(err, streampay.ErrMisconfiguredEndpoint):
		return "Stream Pay returned HTML instead of JSON. The API URL may be incorrect."
	case errors.Is(err, streampay.ErrNoRedirectURL):
		return "No payment URL received from Stream Pay."
	case errors.Is(err, pricing.ErrInvalidCoupon):
		return "Invalid coupon code"
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.As(err, &validation):
		return validation.Message
	case errors.As(err, &notFound):
		return err.Error()
	default:
		return "An error occurred while creating payment link"
	}
}

// StatusCode maps a checkout error onto the HTTP status a JSON client should see
func StatusCode(err error) int {
	var apiErr *streampay.APIError
	var validation *apperrors.ErrValidation
	var notFound *apperrors.ErrNotFound
	var transition *apperrors.ErrInvalidStateTransition

	switch {
	case errors.Is(err, streampay.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, streampay.ErrUnreachable),
		errors.Is(err, streampay.ErrMisconfiguredEndpoint),
		errors.Is(err, streampay.ErrNoRedirectURL),
		errors.As(err, &apiErr):
		return http.StatusBadGateway
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &transition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
