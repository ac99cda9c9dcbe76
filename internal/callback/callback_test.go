package callback

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/streamcheckout/internal/domain"
	"github.com/jafarshop/streamcheckout/internal/streampay"
)

func TestParse(t *testing.T) {
	values, err := url.ParseQuery("id=pay_1&status=paid&invoice_id=inv_9&utm_source=mail&message=")
	require.NoError(t, err)

	p := Parse(values)

	require.NotNil(t, p.ID)
	assert.Equal(t, "pay_1", *p.ID)
	assert.Equal(t, "paid", *p.Status)
	assert.Equal(t, "inv_9", *p.InvoiceID)
	require.NotNil(t, p.Message)
	assert.Equal(t, "", *p.Message)
	assert.Nil(t, p.PaymentID)
	assert.Nil(t, p.Mock)
}

func TestParse_Idempotent(t *testing.T) {
	values, _ := url.ParseQuery("payment_id=p&login_method=otp&consent_id=c")

	assert.Equal(t, Parse(values), Parse(values))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  domain.PaymentOutcome
	}{
		{"paid status", "status=paid", domain.OutcomePaid},
		{"approved message", "message=APPROVED", domain.OutcomePaid},
		{"failed status", "status=failed", domain.OutcomeFailed},
		{"failed with declined", "status=failed&message=DECLINED", domain.OutcomeFailed},
		{"declined message", "message=DECLINED", domain.OutcomeFailed},
		{"expired", "status=expired", domain.OutcomeFailed},
		{"nothing", "", domain.OutcomeCancelled},
		{"unknown status", "status=pending", domain.OutcomeCancelled},
		{"case sensitive", "status=PAID", domain.OutcomeCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Classify(Parse(values)))
		})
	}
}

func TestIsMock(t *testing.T) {
	values, _ := url.ParseQuery("mock=true&id=paylink_1&status=paid")
	assert.True(t, IsMock(Parse(values)))
	assert.False(t, IsMock(Parse(url.Values{})))
}

type invoiceGateway struct {
	*streampay.MockClient
	err error
}

func (g invoiceGateway) GetInvoice(ctx context.Context, id string) (*streampay.Invoice, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &streampay.Invoice{ID: id, Status: "PAID", Amount: "113.85", Currency: "SAR"}, nil
}

func TestVerifier(t *testing.T) {
	mock := streampay.NewMockClient(0, zap.NewNop())
	ctx := context.Background()

	none := NewVerifier(invoiceGateway{MockClient: mock}, zap.NewNop()).Verify(ctx, domain.CallbackParams{})
	assert.False(t, none.Checked)
	assert.Empty(t, none.Label())

	values, _ := url.ParseQuery("invoice_id=inv_1")
	ok := NewVerifier(invoiceGateway{MockClient: mock}, zap.NewNop()).Verify(ctx, Parse(values))
	assert.True(t, ok.Verified)
	assert.Equal(t, "PAID", ok.Status)
	assert.Equal(t, "113.85", ok.Amount)
	assert.Equal(t, "verified: PAID", ok.Label())

	failed := NewVerifier(invoiceGateway{MockClient: mock, err: errors.New("boom")}, zap.NewNop()).Verify(ctx, Parse(values))
	assert.True(t, failed.Checked)
	assert.False(t, failed.Verified)
	assert.Equal(t, "unverified", failed.Label())
}
