package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/sheikhstore/storefront/internal/domain/catalog"
	"github.com/sheikhstore/storefront/internal/domain/order"
)

// maxResponseSize is the maximum allowed response size from the backend (10MB)
const maxResponseSize = 10 * 1024 * 1024

// ErrSubmissionFailed covers every order submission failure the client
// can observe. Network errors, timeouts, and server rejections all
// collapse into this one error; the storefront shows a single generic
// message for all of them.
var ErrSubmissionFailed = errors.New("backend: order submission failed")

// ErrUnavailable indicates the catalog could not be fetched.
var ErrUnavailable = errors.New("backend: catalog unavailable")

func init() {
	// The backend speaks bare JSON numbers for prices and totals.
	decimal.MarshalJSONWithoutQuotes = true
}

// Config holds backend API client settings
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client consumes the shop backend HTTP API: the category/product tree
// and order submission. It is the only network boundary of the app.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a backend API client. Outbound requests are traced
// through the otelhttp transport.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend: invalid base URL %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}, nil
}

// FetchCategories retrieves the full category tree with nested products.
func (c *Client) FetchCategories(ctx context.Context) ([]catalog.Category, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/categories", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("categories fetch rejected",
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var categories []catalog.Category
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return categories, nil
}

// CreateOrder submits one order. The idempotency key travels as a header
// so a future backend can deduplicate; servers that do not know it simply
// ignore the header. Exactly one request is made per call, no retries.
func (c *Client) CreateOrder(ctx context.Context, idempotencyKey string, orderReq order.Request) (*order.Confirmation, error) {
	payload, err := json.Marshal(orderReq)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", ErrSubmissionFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrSubmissionFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("order submission rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("idempotency_key", idempotencyKey))
		return nil, fmt.Errorf("%w: status %d", ErrSubmissionFailed, resp.StatusCode)
	}

	confirmation := &order.Confirmation{}
	if len(body) > 0 {
		// A body that does not decode is tolerated; the order was accepted.
		if err := json.Unmarshal(body, confirmation); err != nil {
			c.logger.Warn("order confirmation body not decodable", zap.Error(err))
			confirmation = &order.Confirmation{Total: orderReq.Total, CustomerInfo: orderReq.CustomerInfo}
		}
	}
	return confirmation, nil
}
