// Package liveness provides the optional reachability probe for dataset
// URLs. Probing is opt-in and lives entirely outside the metric core: the
// evaluator passes a probe function in, so metric logic stays deterministic
// and testable without a network.
package liveness

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"time"
)

var schemeRE = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// Checker reports whether a URL is reachable. Implementations must be safe
// for concurrent use.
type Checker interface {
	Check(ctx context.Context, rawURL string) bool
}

// Disabled is the checker used when live checks are not requested; it
// reports every URL as unreachable without touching the network.
type Disabled struct{}

// Check always returns false.
func (Disabled) Check(context.Context, string) bool { return false }

// HTTPChecker probes URLs with a HEAD request, falling back to GET when
// HEAD is rejected. Any 2xx status counts as alive.
type HTTPChecker struct {
	client  *http.Client
	timeout time.Duration
	retry   RetryConfig
}

// NewHTTPChecker creates a prober with the given per-request timeout.
func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = 6 * time.Second
	}
	return &HTTPChecker{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		retry:   DefaultRetryConfig(),
	}
}

// Check reports whether the URL answers with a 2xx status. Schemeless URLs
// default to https. Transient failures are retried with backoff; anything
// else is simply dead.
func (c *HTTPChecker) Check(ctx context.Context, rawURL string) bool {
	if rawURL == "" {
		return false
	}
	if !schemeRE.MatchString(rawURL) {
		rawURL = "https://" + rawURL
	}

	alive := false
	_ = c.retry.Do(ctx, func() error {
		ok, err := c.probe(ctx, rawURL)
		if err != nil {
			return err
		}
		alive = ok
		return nil
	})
	return alive
}

func (c *HTTPChecker) probe(ctx context.Context, rawURL string) (bool, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false, nil
	}
	resp, err := c.client.Do(req)
	if err == nil {
		defer drain(resp)
		if is2xx(resp.StatusCode) {
			return true, nil
		}
		if resp.StatusCode != http.StatusMethodNotAllowed && resp.StatusCode != http.StatusNotImplemented {
			return false, nil
		}
	}

	// Some hosts reject HEAD outright; try a streaming GET.
	getReq, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false, nil
	}
	getResp, err := c.client.Do(getReq)
	if err != nil {
		return false, err
	}
	defer drain(getResp)
	return is2xx(getResp.StatusCode), nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
	_ = resp.Body.Close()
}
