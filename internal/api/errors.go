package api

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks against transport failures.
var (
	// ErrNotFound indicates the remote object is absent or expired.
	ErrNotFound = errors.New("not found")
	// ErrBurnt indicates the remote object was already consumed.
	ErrBurnt = errors.New("already burnt")
	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// APIError represents an HTTP error response from the secretbin API. The
// server reports a short machine code plus per-field detail strings.
type APIError struct {
	StatusCode int
	Code       string
	Errors     []string
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("API error %d: %s (%s)", e.StatusCode, e.Code, strings.Join(e.Errors, "; "))
	}
	if e.Code != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 404:
		return target == ErrNotFound
	case 410:
		return target == ErrBurnt
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// NetworkError represents a network-level failure before any HTTP status was
// received.
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
