package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/give-gateway/internal/logger"
)

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// GetBytes performs a GET request and returns the response body
	GetBytes(ctx context.Context, url string, headers map[string]string) ([]byte, error)

	// PostBytes performs a POST request and returns the response body
	PostBytes(ctx context.Context, url string, headers map[string]string, contentType string, body []byte) ([]byte, error)

	// Delete performs a DELETE request and returns the response body
	Delete(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// HTTPError is returned for any non-2xx response. Body holds the raw response payload.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, string(e.Body))
}

// HTTPOption customizes a RealHTTPClient
type HTTPOption func(*RealHTTPClient)

// WithRetryPolicy overrides the exponential backoff used for 429 and transport errors
func WithRetryPolicy(initialInterval, maxElapsed time.Duration) HTTPOption {
	return func(c *RealHTTPClient) {
		c.initialInterval = initialInterval
		c.maxElapsed = maxElapsed
	}
}

// WithoutRetry makes every request a single attempt
func WithoutRetry() HTTPOption {
	return func(c *RealHTTPClient) {
		c.noRetry = true
	}
}

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client          *http.Client
	initialInterval time.Duration
	maxElapsed      time.Duration
	noRetry         bool
}

// NewHTTPClient creates a new real HTTP client
func NewHTTPClient(timeout time.Duration, opts ...HTTPOption) HTTPClient {
	c := &RealHTTPClient{
		client:          &http.Client{Timeout: timeout},
		initialInterval: 2 * time.Second,
		maxElapsed:      time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetBytes performs a GET request and returns the response body
func (c *RealHTTPClient) GetBytes(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return c.doRequestWithRetry(ctx, http.MethodGet, url, headers, "", nil)
}

// PostBytes performs a POST request and returns the response body
func (c *RealHTTPClient) PostBytes(ctx context.Context, url string, headers map[string]string, contentType string, body []byte) ([]byte, error) {
	return c.doRequestWithRetry(ctx, http.MethodPost, url, headers, contentType, body)
}

// Delete performs a DELETE request and returns the response body
func (c *RealHTTPClient) Delete(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return c.doRequestWithRetry(ctx, http.MethodDelete, url, headers, "", nil)
}

// doRequestWithRetry executes an HTTP request with exponential backoff retry for rate limiting.
// The request is rebuilt on every attempt so the body can be replayed.
func (c *RealHTTPClient) doRequestWithRetry(ctx context.Context, method, url string, headers map[string]string, contentType string, body []byte) ([]byte, error) {
	var respBody []byte

	operation := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			// Network errors are retryable
			return fmt.Errorf("failed to perform request: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warn("failed to close response body", zap.Error(err), zap.String("url", url))
			}
		}()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			logger.Warn("rate limited, retrying with backoff", zap.String("method", method), zap.String("url", url))
			// Returned as is once retries run out
			return &HTTPError{StatusCode: resp.StatusCode, Body: data}
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return backoff.Permanent(&HTTPError{StatusCode: resp.StatusCode, Body: data})
		}

		respBody = data
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = c.maxElapsed
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	var policy backoff.BackOff = b
	if c.noRetry {
		policy = backoff.WithMaxRetries(b, 0)
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, url, err)
	}

	return respBody, nil
}
