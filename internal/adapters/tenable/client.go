package tenable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/vulniq/vulniq/internal/core/domain"
	"github.com/vulniq/vulniq/internal/core/ports"
	"github.com/vulniq/vulniq/internal/telemetry"
)

// UpstreamError is a non-2xx reply from the vulnerability-management API.
type UpstreamError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s returned %d: %s", e.Path, e.StatusCode, e.Body)
}

// retryable reports whether a fresh attempt can reasonably succeed.
// Client errors other than 429 are final.
func (e *UpstreamError) retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// Client is the REST gateway to the upstream vulnerability-management API.
// Every call reads a fresh settings snapshot, so credential updates take
// effect on the next request without tearing an in-flight one.
type Client struct {
	settings   ports.SettingsStore
	httpClient *http.Client
}

// NewClient creates a gateway backed by the given settings store.
func NewClient(store ports.SettingsStore) *Client {
	return &Client{
		settings:   store,
		httpClient: &http.Client{},
	}
}

// Do issues one authenticated call and returns the raw response body.
// GET requests honor the configured retry budget with exponential backoff;
// mutating requests are issued exactly once.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	snap := c.settings.Snapshot()

	if method != http.MethodGet || snap.MaxRetries <= 0 {
		return c.doOnce(ctx, snap, method, path, query, body)
	}

	attempt := func() (json.RawMessage, error) {
		raw, err := c.doOnce(ctx, snap, method, path, query, body)
		if err != nil {
			var upErr *UpstreamError
			if errors.As(err, &upErr) && !upErr.retryable() {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return raw, nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = 250 * time.Millisecond

	return backoff.Retry(ctx, attempt,
		backoff.WithBackOff(expo),
		backoff.WithMaxTries(uint(snap.MaxRetries)+1),
		backoff.WithNotify(func(err error, _ time.Duration) {
			telemetry.UpstreamRetries.WithLabelValues(path).Inc()
		}),
	)
}

func (c *Client) doOnce(ctx context.Context, snap domain.Settings, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if snap.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, snap.Timeout)
		defer cancel()
	}

	endpoint := snap.BaseURL + path
	if encoded := encodeQuery(query); encoded != "" {
		endpoint += "?" + encoded
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("X-ApiKeys", fmt.Sprintf("accessKey=%s; secretKey=%s", snap.AccessKey, snap.SecretKey))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		telemetry.UpstreamRequests.WithLabelValues(path, "error").Inc()
		return nil, fmt.Errorf("upstream %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	telemetry.UpstreamRequests.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()
	telemetry.UpstreamLatency.WithLabelValues(path).Observe(time.Since(start).Seconds())

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Path: path, Body: string(data)}
	}
	return data, nil
}

// encodeQuery drops blank values and percent-encodes the rest.
func encodeQuery(query url.Values) string {
	if query == nil {
		return ""
	}
	clean := url.Values{}
	for key, values := range query {
		for _, v := range values {
			if v != "" {
				clean.Add(key, v)
			}
		}
	}
	return clean.Encode()
}
