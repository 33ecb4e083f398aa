// Package livescore is the live-data provider adapter the live scoring run polls.
package livescore

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/excitement-engine/internal/domain/livedata"
	"github.com/riskibarqy/excitement-engine/internal/platform/logging"
	"github.com/riskibarqy/excitement-engine/internal/platform/resilience"
	"github.com/riskibarqy/excitement-engine/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

const (
	DefaultProviderID = "livescore"

	defaultTimeout      = 10 * time.Second
	defaultRetryBackoff = 500 * time.Millisecond
	maxResponseBytes    = 4 << 20
)

var (
	errTransient = crerr.New("livescore transient failure")
	errNotFound  = crerr.New("livescore resource not found")
)

type ClientConfig struct {
	BaseURL           string
	Token             string
	ProviderID        string
	Timeout           time.Duration
	MaxRetries        int
	RetryBackoff      time.Duration
	RequestsPerSecond float64
	Burst             int
	CircuitBreaker    resilience.Config
	Logger            *logging.Logger
}

type Client struct {
	httpClient   *fasthttp.Client
	baseURL      string
	token        string
	providerID   string
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
	limiter      *rate.Limiter
	breaker      *resilience.Breaker
	logger       *logging.Logger
}

var _ usecase.LiveDataProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("livescore")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	providerID := strings.TrimSpace(cfg.ProviderID)
	if providerID == "" {
		providerID = DefaultProviderID
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	breaker := resilience.New(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.State) {
		logger.Warn("livescore circuit breaker state changed", "from", string(from), "to", string(to))
	})

	return &Client{
		httpClient: &fasthttp.Client{
			Name:                     "excitement-engine",
			ReadTimeout:              timeout,
			WriteTimeout:             timeout,
			MaxIdleConnDuration:      30 * time.Second,
			NoDefaultUserAgentHeader: true,
		},
		baseURL:      strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:        strings.TrimSpace(cfg.Token),
		providerID:   providerID,
		timeout:      timeout,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		limiter:      rate.NewLimiter(limit, burst),
		breaker:      breaker,
		logger:       logger,
	}
}

func (c *Client) ProviderID() string {
	return c.providerID
}

func (c *Client) GetLiveEvents(ctx context.Context) ([]livedata.ExternalEvent, error) {
	var envelope liveEventsEnvelope
	if err := c.getJSON(ctx, "/events/live", &envelope); err != nil {
		return nil, crerr.Wrap(err, "fetch live events")
	}

	out := make([]livedata.ExternalEvent, 0, len(envelope.Events))
	for _, item := range envelope.Events {
		event := item.toDomain()
		if event.ID == "" {
			continue
		}
		out = append(out, event)
	}
	return out, nil
}

func (c *Client) GetEventInfo(ctx context.Context, externalID string) (livedata.EventInfo, error) {
	var envelope eventInfoEnvelope
	if err := c.getJSON(ctx, "/event/"+url.PathEscape(externalID), &envelope); err != nil {
		return livedata.EventInfo{}, crerr.Wrapf(err, "fetch event %s", externalID)
	}

	info := envelope.Event.toDomain()
	if info.ID == "" {
		info.ID = externalID
	}
	return info, nil
}

// GetEventStatistics reports found=false when the provider has no statistics for the
// event yet, either through a 404 or an empty list.
func (c *Client) GetEventStatistics(ctx context.Context, externalID string) (livedata.Statistics, bool, error) {
	var envelope statisticsEnvelope
	err := c.getJSON(ctx, "/event/"+url.PathEscape(externalID)+"/statistics", &envelope)
	if stderrors.Is(err, errNotFound) {
		return livedata.Statistics{}, false, nil
	}
	if err != nil {
		return livedata.Statistics{}, false, crerr.Wrapf(err, "fetch statistics for event %s", externalID)
	}

	stats, ok := envelope.toDomain()
	return stats, ok, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	if c.baseURL == "" {
		return crerr.New("livescore base url is not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	fullURL := c.buildURL(path)
	var raw []byte
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		body, reqErr := c.executeRequest(ctx, fullURL)
		raw = body
		return reqErr
	}, isCircuitFailure)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "livescore circuit breaker rejected request", "path", path, "state", string(c.breaker.State()))
		return fmt.Errorf("%w: live data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode provider payload")
	}
	return nil
}

func (c *Client) buildURL(path string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	if !strings.HasPrefix(path, "/") {
		_ = buf.WriteByte('/')
	}
	_, _ = buf.WriteString(path)
	return buf.String()
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, status, err := c.doOnce(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = crerr.Wrapf(errTransient, "send request: %v", err)
		case status >= 200 && status < 300:
			return body, nil
		case status == http.StatusNotFound:
			return nil, errNotFound
		case isRetryableStatus(status):
			lastErr = crerr.Wrapf(errTransient, "provider status=%d body=%s", status, abbreviateBody(body))
		default:
			return nil, crerr.Newf("provider status=%d body=%s", status, abbreviateBody(body))
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "livescore request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, fullURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	body := resp.Body()
	if len(body) > maxResponseBytes {
		body = body[:maxResponseBytes]
	}
	return append([]byte(nil), body...), resp.StatusCode(), nil
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > 256 {
		return text[:256] + "...(truncated)"
	}
	return text
}
