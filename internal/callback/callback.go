package callback

import (
	"net/url"

	"github.com/jafarshop/streamcheckout/internal/domain"
)

// Parse reads the gateway's redirect parameters. Keys that are absent stay nil;
// unknown keys are ignored.
func Parse(values url.Values) domain.CallbackParams {
	get := func(key string) *string {
		if _, ok := values[key]; !ok {
			return nil
		}
		v := values.Get(key)
		return &v
	}

	return domain.CallbackParams{
		ID:                     get("id"),
		Status:                 get("status"),
		Message:                get("message"),
		PaymentID:              get("payment_id"),
		PaymentLinkID:          get("payment_link_id"),
		InvoiceID:              get("invoice_id"),
		ConsentID:              get("consent_id"),
		OrganizationConsumerID: get("organization_consumer_id"),
		LoginMethod:            get("login_method"),
		Mock:                   get("mock"),
	}
}

// Classify decides how a callback page presents the redirect. It is a
// display decision only; the parameters are not authenticated.
func Classify(p domain.CallbackParams) domain.PaymentOutcome {
	status := value(p.Status)
	message := value(p.Message)

	switch {
	case status == "paid" || message == "APPROVED":
		return domain.OutcomePaid
	case status == "failed" || status == "expired" || message == "DECLINED":
		return domain.OutcomeFailed
	default:
		return domain.OutcomeCancelled
	}
}

// IsMock reports whether the redirect came from the demo gateway
func IsMock(p domain.CallbackParams) bool {
	return value(p.Mock) == "true"
}

// Value dereferences an optional parameter
func Value(s *string) string {
	return value(s)
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
