package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrSourceUnavailable marks any failure to obtain a snapshot from upstream.
var ErrSourceUnavailable = errors.New("source unavailable")

// UpstreamError is a non-2xx response from the data API.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

func (e *UpstreamError) Unwrap() error { return ErrSourceUnavailable }

// Retryable reports whether repeating the request could succeed. Client errors other than 429 are final.
func (e *UpstreamError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// RateLimitError captures rate limit responses from upstream.
type RateLimitError struct {
	Endpoint   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "upstream rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

func (e *RateLimitError) Unwrap() error { return ErrSourceUnavailable }

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// Unavailable wraps err so it matches ErrSourceUnavailable, keeping the original in the chain.
func Unavailable(endpoint string, err error) error {
	if err == nil || errors.Is(err, ErrSourceUnavailable) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", endpoint, ErrSourceUnavailable, err)
}

func retryable(err error) bool {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr.Retryable()
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
