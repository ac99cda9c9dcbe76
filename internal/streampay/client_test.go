package streampay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/streamcheckout/internal/config"
	apperrors "github.com/jafarshop/streamcheckout/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.StreamPayConfig{
		APIURL:    srv.URL + "/api/v2/",
		APIKey:    "key",
		SecretKey: "secret",
		Timeout:   2 * time.Second,
	}, zap.NewNop())
}

func sampleLinkRequest() PaymentLinkRequest {
	return PaymentLinkRequest{
		Name:                   "Monthly Subscription",
		Description:            "Payment for Monthly Subscription",
		Currency:               "SAR",
		ContactInformationType: ContactPhone,
		MaxNumberOfPayments:    100,
		SuccessRedirectURL:     "https://shop.example.com/payment/success",
		FailureRedirectURL:     "https://shop.example.com/payment/failure",
		Items:                  []PaymentLinkItem{{ProductID: "p-1", Quantity: 1}},
		CustomMetadata:         CustomMetadata{CustomerName: "Sara", TotalAmount: 113.85},
	}
}

func TestAuthToken(t *testing.T) {
	token := AuthToken("key", "secret")

	decoded, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Equal(t, "key:secret", string(decoded))
}

func TestCreatePaymentLink_Success(t *testing.T) {
	var got PaymentLinkRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v2/payment_links", r.URL.Path)
		assert.Equal(t, AuthToken("key", "secret"), r.Header.Get("x-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pay_abc123","url":"https://checkout.streampay.sa/pay/pay_abc123","status":"ACTIVE","amount":"113.85","currency":"SAR"}`))
	})

	link, err := client.CreatePaymentLink(context.Background(), sampleLinkRequest())
	require.NoError(t, err)

	assert.Equal(t, "pay_abc123", link.ID)
	assert.Equal(t, "https://checkout.streampay.sa/pay/pay_abc123", link.URL)
	assert.Equal(t, FlexString("113.85"), link.Amount)
	assert.False(t, link.Mock)
	assert.Equal(t, "p-1", got.Items[0].ProductID)
	assert.Equal(t, "Sara", got.CustomMetadata.CustomerName)
}

func TestCreatePaymentLink_NumericAmount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"pay_1","url":"https://pay/1","status":"ACTIVE","amount":9900,"currency":"SAR"}`))
	})

	link, err := client.CreatePaymentLink(context.Background(), sampleLinkRequest())
	require.NoError(t, err)
	assert.Equal(t, FlexString("9900"), link.Amount)
}

func TestCreatePaymentLink_Errors(t *testing.T) {
	longJSON := `{"details":"` + strings.Repeat("x", 300) + `"}`
	longText := strings.Repeat("y", 300)

	tests := []struct {
		name       string
		status     int
		body       string
		wantIs     error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "json message",
			status:     http.StatusBadRequest,
			body:       `{"message":"items[0].product_id must be a valid UUID"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "items[0].product_id must be a valid UUID",
		},
		{
			name:       "json error field",
			status:     http.StatusUnauthorized,
			body:       `{"error":"invalid api key"}`,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "invalid api key",
		},
		{
			name:       "json without message is truncated",
			status:     http.StatusUnprocessableEntity,
			body:       longJSON,
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    longJSON[:maxErrorText],
		},
		{
			name:       "long plain text is truncated",
			status:     http.StatusInternalServerError,
			body:       longText,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    longText[:maxErrorText],
		},
		{
			name:       "plain text",
			status:     http.StatusInternalServerError,
			body:       "upstream exploded",
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "upstream exploded",
		},
		{
			name:       "empty body",
			status:     http.StatusBadGateway,
			body:       "",
			wantStatus: http.StatusBadGateway,
			wantMsg:    "HTTP 502",
		},
		{
			name:   "html error page",
			status: http.StatusNotFound,
			body:   "<!DOCTYPE html><html><body>Not Found</body></html>",
			wantIs: ErrMisconfiguredEndpoint,
		},
		{
			name:   "html with ok status",
			status: http.StatusOK,
			body:   "<html><body>login</body></html>",
			wantIs: ErrMisconfiguredEndpoint,
		},
		{
			name:   "invalid json with ok status",
			status: http.StatusOK,
			body:   "not json",
			wantIs: ErrMisconfiguredEndpoint,
		},
		{
			name:   "missing url",
			status: http.StatusOK,
			body:   `{"id":"pay_1","status":"ACTIVE"}`,
			wantIs: ErrNoRedirectURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			link, err := client.CreatePaymentLink(context.Background(), sampleLinkRequest())
			require.Error(t, err)
			assert.Nil(t, link)

			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
				return
			}
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestCreatePaymentLink_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(config.StreamPayConfig{
		APIURL:    srv.URL,
		APIKey:    "key",
		SecretKey: "secret",
		Timeout:   50 * time.Millisecond,
	}, zap.NewNop())

	_, err := client.CreatePaymentLink(context.Background(), sampleLinkRequest())
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestCreatePaymentLink_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	client := NewClient(config.StreamPayConfig{
		APIURL:    addr,
		APIKey:    "key",
		SecretKey: "secret",
		Timeout:   time.Second,
	}, zap.NewNop())

	_, err := client.CreatePaymentLink(context.Background(), sampleLinkRequest())
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestCreateProduct(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/products", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "113.85", body["unit_price"])
		assert.Equal(t, "SAR", body["currency"])

		w.Write([]byte(`{"id":"3025034d-48f9-41cf-a32e-c93a5fe36d93","name":"Monthly Subscription","unit_price":"113.85","currency":"SAR","status":"ACTIVE"}`))
	})

	product, err := client.CreateProduct(context.Background(), ProductRequest{
		Name:      "Monthly Subscription",
		UnitPrice: "113.85",
	})
	require.NoError(t, err)
	assert.Equal(t, "3025034d-48f9-41cf-a32e-c93a5fe36d93", product.ID)
	assert.Equal(t, "ACTIVE", product.Status)
}

func TestGetInvoice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v2/invoices/inv_42", r.URL.Path)
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.Write([]byte(`{"id":"inv_42","status":"PAID","amount":"113.85","currency":"SAR"}`))
	})

	invoice, err := client.GetInvoice(context.Background(), "inv_42")
	require.NoError(t, err)
	assert.Equal(t, "PAID", invoice.Status)
}

func TestGetInvoice_EmptyID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.GetInvoice(context.Background(), "")
	var validation *apperrors.ErrValidation
	assert.True(t, errors.As(err, &validation))
}

func TestPing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/payment_links", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
	})

	status, err := client.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
}
