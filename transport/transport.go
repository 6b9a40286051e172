// Package transport executes the HTTPS calls of the store-catalog protocol.
// It owns everything the protocol layer above it does not: timeouts, retry
// with exponential backoff, circuit breaking and tracing. Responses are
// fully buffered; any network failure or non-2xx status is returned as an
// error.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/playapi/playapi/transport"

// ErrCircuitOpen is returned when the circuit breaker rejects a call.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// StatusError reports a non-2xx HTTP response. The first kilobyte of the
// body is retained for diagnostics.
type StatusError struct {
	StatusCode int
	URL        string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Config holds configuration for the transport client. Zero values get
// sensible defaults.
type Config struct {
	// Name identifies this client in circuit breaker state and logs.
	Name string

	// Timeout is the per-attempt HTTP timeout. Default: 10s.
	Timeout time.Duration

	// MaxRetries is the number of retry attempts after the first failure.
	// Default: 3. Only network errors and 5xx responses are retried.
	MaxRetries uint64

	// InitialInterval is the initial retry backoff. Default: 200ms.
	InitialInterval time.Duration

	// MaxInterval caps the retry backoff. Default: 5s.
	MaxInterval time.Duration

	// HTTPClient overrides the underlying client; used in tests.
	HTTPClient *http.Client

	// Logger for per-request debug logging.
	Logger zerolog.Logger
}

// Client is the blocking HTTPS transport used by the catalog client.
type Client struct {
	name    string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	retries uint64
	initial time.Duration
	max     time.Duration
	logger  zerolog.Logger
	tracer  trace.Tracer
}

// New creates a transport client.
func New(cfg Config) *Client {
	if cfg.Name == "" {
		cfg.Name = "playstore"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 200 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 5 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
	})

	return &Client{
		name:    cfg.Name,
		http:    httpClient,
		breaker: breaker,
		retries: cfg.MaxRetries,
		initial: cfg.InitialInterval,
		max:     cfg.MaxInterval,
		logger:  cfg.Logger,
		tracer:  otel.Tracer(tracerName),
	}
}

// Get issues a GET with the given query parameters and headers and returns
// the raw response body.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values, headers map[string]string) ([]byte, error) {
	full := rawURL
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		full = rawURL + sep + params.Encode()
	}
	return c.do(ctx, http.MethodGet, full, nil, "", headers)
}

// Post issues a POST with a raw binary body.
func (c *Client) Post(ctx context.Context, rawURL string, body []byte, headers map[string]string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, rawURL, body, "application/x-protobuf", headers)
}

// PostForm issues a POST with URL-encoded form fields.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values, headers map[string]string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, rawURL, []byte(form.Encode()), "application/x-www-form-urlencoded", headers)
}

// State returns the current circuit breaker state.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

func (c *Client) do(ctx context.Context, method, fullURL string, body []byte, contentType string, headers map[string]string) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "playstore.http "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", fullURL),
		),
	)
	defer span.End()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initial
	bo.MaxInterval = c.max
	bo.MaxElapsedTime = 0

	var respBody []byte
	operation := func() error {
		out, err := c.breaker.Execute(func() ([]byte, error) {
			return c.attempt(ctx, method, fullURL, body, contentType, headers)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			var statusErr *StatusError
			if errors.As(err, &statusErr) && statusErr.StatusCode < 500 {
				// 4xx is the server's final word.
				return backoff.Permanent(err)
			}
			return err
		}
		respBody = out
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, c.retries), ctx))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Debug().Str("method", method).Str("url", fullURL).Err(err).Msg("request failed")
		return nil, err
	}

	c.logger.Debug().Str("method", method).Str("url", fullURL).Int("bytes", len(respBody)).Msg("request ok")
	return respBody, nil
}

// attempt performs a single HTTP exchange and buffers the body.
func (c *Client) attempt(ctx context.Context, method, fullURL string, body []byte, contentType string, headers map[string]string) ([]byte, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(out) > 1024 {
			out = out[:1024]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: fullURL, Body: out}
	}

	return out, nil
}
