package service

import (
	"context"

	"github.com/jafarshop/streamcheckout/internal/streampay"
)

type fakeGateway struct {
	mock bool

	productErr error
	linkErr    error
	linkURL    string

	productCalls int
	linkRequests []streampay.PaymentLinkRequest
}

func newFakeGateway(mock bool) *fakeGateway {
	return &fakeGateway{mock: mock, linkURL: "https://checkout.streampay.sa/pay/pay_1"}
}

func (f *fakeGateway) MockMode() bool { return f.mock }

func (f *fakeGateway) CreateProduct(ctx context.Context, req streampay.ProductRequest) (*streampay.Product, error) {
	f.productCalls++
	if f.productErr != nil {
		return nil, f.productErr
	}
	return &streampay.Product{ID: "gw-product-1", Name: req.Name, UnitPrice: streampay.FlexString(req.UnitPrice), Currency: req.Currency}, nil
}

func (f *fakeGateway) CreatePaymentLink(ctx context.Context, req streampay.PaymentLinkRequest) (*streampay.PaymentLink, error) {
	f.linkRequests = append(f.linkRequests, req)
	if f.linkErr != nil {
		return nil, f.linkErr
	}
	return &streampay.PaymentLink{ID: "pay_1", URL: f.linkURL, Status: "ACTIVE", Mock: f.mock}, nil
}

func (f *fakeGateway) CreateConsumer(ctx context.Context, req streampay.ConsumerRequest) (*streampay.Consumer, error) {
	return &streampay.Consumer{ID: "cons_1", Name: req.Name, Email: req.Email}, nil
}

func (f *fakeGateway) GetInvoice(ctx context.Context, invoiceID string) (*streampay.Invoice, error) {
	return &streampay.Invoice{ID: invoiceID, Status: "PAID"}, nil
}

func (f *fakeGateway) Ping(ctx context.Context) (int, error) { return 200, nil }
