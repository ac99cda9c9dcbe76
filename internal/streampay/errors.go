package streampay

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable is returned when the gateway cannot be contacted
	ErrUnreachable = errors.New("stream pay API unreachable")
	// ErrTimeout is returned when the gateway does not answer in time
	ErrTimeout = errors.New("request timeout - API took too long to respond")
	// ErrMisconfiguredEndpoint is returned when the endpoint answers with HTML
	// or another non-JSON body
	ErrMisconfiguredEndpoint = errors.New("endpoint misconfigured")
	// ErrNoRedirectURL is returned when a payment link comes back without a URL
	ErrNoRedirectURL = errors.New("no payment URL received from API")
)

// APIError is a non-success HTTP answer from the gateway
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stream pay API error %d: %s", e.StatusCode, e.Message)
}
