// Package upstream talks to the third-party offers provider. The bearer
// credential lives here and in config only; it is never logged and never
// reaches the caller.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickwarner/offergate/internal/models"
	"github.com/patrickwarner/offergate/internal/observability"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// DefaultUserAgent is sent upstream when the caller supplies no user agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// CTypeMask is the category filter sent with every upstream request: both
// CPI and CPA bits set, so the oversampled pool spans both categories and
// the split happens locally in the ranker.
const CTypeMask = models.CTypeCPI | models.CTypeCPA

// Client issues authenticated requests to the offers provider.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    observability.MetricsRegistry
}

// Query describes one outbound offers request.
type Query struct {
	UserAgent string
	IP        string
	CType     int
	Max       int
}

// Error is a non-2xx provider response. The original status code and body
// are carried so the handler can pass them through to the caller.
type Error struct {
	StatusCode int
	Body       []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// New creates a Client for the provider at baseURL authenticated with apiKey.
func New(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger, metrics observability.MetricsRegistry) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger:  logger,
		metrics: metrics,
	}
}

// FetchOffers requests an oversampled pool of offers for the given query and
// returns the raw response body. A zero Max or CType falls back to the fixed
// oversampling defaults. Non-2xx responses come back as *Error.
func (c *Client) FetchOffers(ctx context.Context, q Query) ([]byte, error) {
	start := time.Now()
	outcome := "error"
	defer func() {
		c.metrics.RecordUpstreamLatency(time.Since(start))
		c.metrics.IncrementUpstreamRequests(outcome)
	}()

	ua := q.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	ctype := q.CType
	if ctype == 0 {
		ctype = CTypeMask
	}
	max := q.Max
	if max == 0 {
		max = 30
	}

	params := url.Values{}
	params.Set("user_agent", ua)
	params.Set("ctype", strconv.Itoa(ctype))
	params.Set("max", strconv.Itoa(max))
	params.Set("ip", q.IP)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("offers request failed", zap.Error(err), zap.String("ip", q.IP))
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil && c.logger != nil {
			c.logger.Warn("failed to close response body", zap.Error(err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome = strconv.Itoa(resp.StatusCode)
		c.logger.Warn("offers request rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("ip", q.IP))
		return nil, &Error{StatusCode: resp.StatusCode, Body: body}
	}
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	outcome = strconv.Itoa(resp.StatusCode)
	return body, nil
}
