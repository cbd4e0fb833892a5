package gh

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrCancelled marks a request abandoned because its context was cancelled.
	// It is a non-outcome, never shown to the user.
	ErrCancelled = errors.New("search cancelled")
	// ErrAnonymous indicates an operation that requires a token was attempted without one.
	ErrAnonymous = errors.New("not authenticated")
)

// ClientError is a non-2xx response from the provider.
type ClientError struct {
	StatusCode int
	Status     string // Status phrase, e.g. "Not Found"
	Body       string // Raw response body, empty if unreadable
	RateLimit  bool   // Provider reported an exhausted quota
}

func (e *ClientError) Error() string {
	text := strings.TrimSpace(e.Body)
	if text == "" {
		text = e.Status
	}
	return fmt.Sprintf("GitHub API error (%d): %s", e.StatusCode, text)
}

// TransportError is a network-level failure before a response was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError is a success response whose body could not be decoded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected response from GitHub: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StatusCode extracts the HTTP status code of a ClientError when available.
func StatusCode(err error) (int, bool) {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.StatusCode, true
	}
	return 0, false
}

// IsCancelled reports whether err is a cancellation non-outcome.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsRateLimited reports whether err is a rate limit failure.
func IsRateLimited(err error) bool {
	var ce *ClientError
	if !errors.As(err, &ce) {
		return false
	}
	if ce.RateLimit || ce.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return ce.StatusCode == http.StatusForbidden &&
		strings.Contains(strings.ToLower(ce.Body), "rate limit")
}
