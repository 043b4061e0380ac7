package secretbin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/secretbin/client-go/internal/api"
	"github.com/secretbin/client-go/internal/codec"
	"github.com/secretbin/client-go/internal/crypto"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrValidation is returned when a required field is missing or empty.
	// Validation failures are fatal and surfaced before any network call.
	ErrValidation = errors.New("validation failed")

	// ErrDecode is returned when PEM, base64 or hex input is malformed.
	ErrDecode = codec.ErrDecode

	// ErrKeyImport is returned when PEM key material is not a valid RSA
	// SPKI/PKCS#8 structure.
	ErrKeyImport = crypto.ErrKeyImport

	// ErrDecryptionFailed is returned when decryption fails. Whether the
	// key, the passphrase or the ciphertext was at fault is deliberately
	// not distinguishable.
	ErrDecryptionFailed = crypto.ErrDecryption

	// ErrPayloadTooLarge is returned when a secret exceeds the OAEP
	// capacity of the request's public key in end-to-end mode.
	ErrPayloadTooLarge = crypto.ErrPayloadTooLarge

	// ErrNotFound is returned when a secret or request is absent or
	// expired. Terminal; never retried.
	ErrNotFound = api.ErrNotFound

	// ErrBurnt is returned when a secret or fulfilment was already
	// consumed. Terminal; never retried.
	ErrBurnt = api.ErrBurnt

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = api.ErrRateLimited

	// ErrVerificationFailed is returned when an email verification code is
	// rejected.
	ErrVerificationFailed = errors.New("email verification failed")

	// ErrNoStoredKey is returned when no cached private key exists for a
	// secret id.
	ErrNoStoredKey = errors.New("no cached private key for secret")
)

// SecretbinError is implemented by all SDK error types.
type SecretbinError interface {
	error
	SecretbinError() // marker method
}

// APIError represents an HTTP error response from the secretbin API.
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

// SecretbinError implements the SecretbinError interface.
func (e *APIError) SecretbinError() {}

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

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// SecretbinError implements the SecretbinError interface.
func (e *NetworkError) SecretbinError() {}

// ValidationError reports one or more missing or invalid input fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// SecretbinError implements the SecretbinError interface.
func (e *ValidationError) SecretbinError() {}

// wrapError converts internal transport errors to public errors so that
// errors.Is() and errors.As() work against the types in this package.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.StatusCode,
			Code:       apiErr.Code,
			Errors:     apiErr.Errors,
		}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err: netErr.Err,
			URL: netErr.URL,
		}
	}

	return err
}
