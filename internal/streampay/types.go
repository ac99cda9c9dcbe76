package streampay

import (
	"bytes"
	"encoding/json"
)

// Contact collection modes accepted by payment links
const (
	ContactPhone = "PHONE"
	ContactEmail = "EMAIL"
)

// PaymentLinkRequest is the body of POST /payment_links
type PaymentLinkRequest struct {
	Name                   string            `json:"name"`
	Description            string            `json:"description"`
	Currency               string            `json:"currency"`
	ContactInformationType string            `json:"contact_information_type"`
	MaxNumberOfPayments    int               `json:"max_number_of_payments"`
	SuccessRedirectURL     string            `json:"success_redirect_url"`
	FailureRedirectURL     string            `json:"failure_redirect_url"`
	Items                  []PaymentLinkItem `json:"items"`
	CustomMetadata         CustomMetadata    `json:"custom_metadata"`
	OrganizationConsumerID string            `json:"organization_consumer_id,omitempty"`
}

type PaymentLinkItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CustomMetadata is attached to the payment link for reconciliation.
// The gateway does not interpret it.
type CustomMetadata struct {
	CustomerName   string  `json:"customerName"`
	CustomerEmail  string  `json:"customerEmail"`
	CustomerPhone  string  `json:"customerPhone"`
	OriginalAmount float64 `json:"originalAmount"`
	VATAmount      float64 `json:"vatAmount"`
	Discount       int     `json:"discount"`
	DiscountAmount float64 `json:"discountAmount"`
	TotalAmount    float64 `json:"totalAmount"`
	CouponCode     string  `json:"couponCode"`
}

// PaymentLink is the gateway's answer to a payment link creation
type PaymentLink struct {
	ID       string     `json:"id"`
	URL      string     `json:"url"`
	Status   string     `json:"status"`
	Amount   FlexString `json:"amount"`
	Currency string     `json:"currency"`
	Mock     bool       `json:"mock,omitempty"`
	Message  string     `json:"message,omitempty"`
}

// ProductRequest is the body of POST /products
type ProductRequest struct {
	Name               string `json:"name"`
	Description        string `json:"description,omitempty"`
	UnitPrice          string `json:"unit_price"`
	Currency           string `json:"currency"`
	Recurring          bool   `json:"recurring"`
	RecurringInterval  string `json:"recurring_interval,omitempty"`
	RecurringFrequency int    `json:"recurring_frequency,omitempty"`
}

type Product struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	UnitPrice FlexString `json:"unit_price"`
	Currency  string     `json:"currency"`
	Status    string     `json:"status"`
	Mock      bool       `json:"mock,omitempty"`
}

// ConsumerRequest is the body of POST /consumers
type ConsumerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email,omitempty" binding:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
}

type Consumer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Mock  bool   `json:"mock,omitempty"`
}

type Invoice struct {
	ID       string     `json:"id"`
	Status   string     `json:"status"`
	Amount   FlexString `json:"amount"`
	Currency string     `json:"currency"`
	Mock     bool       `json:"mock,omitempty"`
}

// FlexString accepts both JSON strings and numbers; the gateway is not
// consistent about amounts.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}
