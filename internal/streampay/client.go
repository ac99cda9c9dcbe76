package streampay

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/streamcheckout/internal/config"
	apperrors "github.com/jafarshop/streamcheckout/pkg/errors"
)

const (
	pingTimeout     = 10 * time.Second
	maxResponseSize = 1 << 20
	maxErrorText    = 200
)

type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Stream Pay REST client
func NewClient(cfg config.StreamPayConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:   strings.TrimSuffix(cfg.APIURL, "/"),
		authToken: AuthToken(cfg.APIKey, cfg.SecretKey),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// AuthToken builds the x-api-key header value: Base64("<key>:<secret>")
func AuthToken(apiKey, secretKey string) string {
	return base64.StdEncoding.EncodeToString([]byte(apiKey + ":" + secretKey))
}

func (c *Client) MockMode() bool { return false }

// CreateProduct registers a product and returns its gateway UUID
func (c *Client) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	if req.Currency == "" {
		req.Currency = DefaultCurrency
	}

	var product Product
	if err := c.do(ctx, http.MethodPost, "/products", req, &product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// CreatePaymentLink creates a hosted checkout link
func (c *Client) CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLink, error) {
	var link PaymentLink
	if err := c.do(ctx, http.MethodPost, "/payment_links", req, &link); err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}
	if link.URL == "" {
		return nil, ErrNoRedirectURL
	}

	c.logger.Info("Payment link created", zap.String("id", link.ID), zap.String("status", link.Status))
	return &link, nil
}

// CreateConsumer creates a customer record usable as organization_consumer_id
func (c *Client) CreateConsumer(ctx context.Context, req ConsumerRequest) (*Consumer, error) {
	var consumer Consumer
	if err := c.do(ctx, http.MethodPost, "/consumers", req, &consumer); err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}
	return &consumer, nil
}

// GetInvoice fetches an invoice by ID
func (c *Client) GetInvoice(ctx context.Context, invoiceID string) (*Invoice, error) {
	if invoiceID == "" {
		return nil, &apperrors.ErrValidation{Field: "invoice_id", Message: "is required"}
	}

	var invoice Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices/"+url.PathEscape(invoiceID), nil, &invoice); err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &invoice, nil
}

// Ping issues GET /payment_links. Any HTTP answer counts as reachable.
func (c *Client) Ping(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/payment_links", nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, c.transportError(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	c.logger.Info("Stream Pay connection test", zap.Int("status", resp.StatusCode))
	return resp.StatusCode, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-api-key", c.authToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	c.logger.Debug("Stream Pay request", zap.String("method", method), zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("Stream Pay response",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromBody(resp.StatusCode, raw)
	}

	if looksLikeHTML(raw) {
		return fmt.Errorf("%w: HTTP %d returned HTML instead of JSON", ErrMisconfiguredEndpoint, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: invalid JSON response from API: %v", ErrMisconfiguredEndpoint, err)
	}
	return nil
}

func (c *Client) transportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w at %s: %v", ErrUnreachable, c.baseURL, err)
}

// errorFromBody extracts the most useful message from a non-success answer
func errorFromBody(status int, raw []byte) error {
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err == nil {
		msg := strings.TrimSpace(string(raw))
		if s, ok := payload["message"].(string); ok && s != "" {
			msg = s
		} else if s, ok := payload["error"].(string); ok && s != "" {
			msg = s
		}
		return &APIError{StatusCode: status, Message: truncateText(msg)}
	}

	if looksLikeHTML(raw) {
		return fmt.Errorf("%w: HTTP %d returned HTML instead of JSON", ErrMisconfiguredEndpoint, status)
	}

	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", status)
	}
	return &APIError{StatusCode: status, Message: truncateText(msg)}
}

func truncateText(msg string) string {
	if len(msg) > maxErrorText {
		return msg[:maxErrorText]
	}
	return msg
}

func looksLikeHTML(raw []byte) bool {
	head := strings.ToLower(string(raw[:min(len(raw), 512)]))
	return strings.Contains(head, "<!doctype") || strings.Contains(head, "<html")
}
