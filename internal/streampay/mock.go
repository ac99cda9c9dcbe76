package streampay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/jafarshop/streamcheckout/pkg/errors"
)

// DemoModeMessage is attached to every fabricated result
const DemoModeMessage = "MOCK MODE: Add STREAM_PAY_API_KEY and STREAM_PAY_SECRET_KEY to .env for real payments"

// MockClient fabricates gateway results locally. It never touches the network.
type MockClient struct {
	linkDelay    time.Duration
	productDelay time.Duration
	invoiceDelay time.Duration
	logger       *zap.Logger
}

// NewMockClient creates a demo client. delay is the payment link latency;
// the other operations answer proportionally faster.
func NewMockClient(delay time.Duration, logger *zap.Logger) *MockClient {
	return &MockClient{
		linkDelay:    delay,
		productDelay: delay * 8 / 15,
		invoiceDelay: delay / 3,
		logger:       logger,
	}
}

func (m *MockClient) MockMode() bool { return true }

func (m *MockClient) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	if err := wait(ctx, m.productDelay); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Product{
		ID:        mockID("prod_"),
		Name:      req.Name,
		UnitPrice: FlexString(req.UnitPrice),
		Currency:  currency,
		Status:    "ACTIVE",
		Mock:      true,
	}, nil
}

func (m *MockClient) CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLink, error) {
	m.logger.Info("MOCK MODE: simulating payment link creation", zap.String("name", req.Name))
	if err := wait(ctx, m.linkDelay); err != nil {
		return nil, err
	}

	id := mockID("paylink_")
	redirect, err := mockRedirect(req.SuccessRedirectURL, id)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	return &PaymentLink{
		ID:       id,
		URL:      redirect,
		Status:   "ACTIVE",
		Amount:   FlexString(strconv.FormatFloat(req.CustomMetadata.TotalAmount, 'f', 2, 64)),
		Currency: currency,
		Mock:     true,
		Message:  DemoModeMessage,
	}, nil
}

func (m *MockClient) CreateConsumer(ctx context.Context, req ConsumerRequest) (*Consumer, error) {
	if err := wait(ctx, m.productDelay); err != nil {
		return nil, err
	}
	return &Consumer{
		ID:    mockID("cons_"),
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Mock:  true,
	}, nil
}

func (m *MockClient) GetInvoice(ctx context.Context, invoiceID string) (*Invoice, error) {
	if invoiceID == "" {
		return nil, &apperrors.ErrValidation{Field: "invoice_id", Message: "is required"}
	}
	if err := wait(ctx, m.invoiceDelay); err != nil {
		return nil, err
	}
	return &Invoice{
		ID:       invoiceID,
		Status:   "PAID",
		Amount:   "100.00",
		Currency: DefaultCurrency,
		Mock:     true,
	}, nil
}

func (m *MockClient) Ping(ctx context.Context) (int, error) {
	return http.StatusOK, ctx.Err()
}

// mockRedirect sends the customer straight to the success page
func mockRedirect(successURL, id string) (string, error) {
	if successURL == "" {
		return "", ErrNoRedirectURL
	}
	u, err := url.Parse(successURL)
	if err != nil {
		return "", fmt.Errorf("invalid success redirect url: %w", err)
	}
	q := u.Query()
	q.Set("mock", "true")
	q.Set("id", id)
	q.Set("status", "paid")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func mockID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
		}
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
