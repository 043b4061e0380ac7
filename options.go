package secretbin

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://secretbin.net"
	defaultExpiry  = 24 * time.Hour
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL     string
	linkBaseURL string
	httpClient  *http.Client
	timeout     time.Duration
	logger      *zap.Logger
	keyStore    *KeyStore
	keyStoreDir string
	onError     func(error)
}

// secretConfig holds configuration for the lifecycle operations.
type secretConfig struct {
	passphrase    string
	expiry        time.Duration
	endToEnd      bool
	toEmail       string
	fromEmail     string
	verifiedToken string
}

// Option configures the client.
type Option func(*clientConfig)

// SecretOption configures a lifecycle operation.
type SecretOption func(*secretConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithLinkBaseURL sets the public base URL used when building share links.
// Defaults to the API base URL.
func WithLinkBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.linkBaseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger. Defaults to a no-op logger. Plaintext and
// passphrases are never logged at any level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithKeyStore sets the private key cache used for end-to-end requests.
func WithKeyStore(ks *KeyStore) Option {
	return func(c *clientConfig) {
		c.keyStore = ks
	}
}

// WithKeyStoreDir sets the directory backing the private key cache.
// Defaults to a "secretbin" directory under the user config dir.
func WithKeyStoreDir(dir string) Option {
	return func(c *clientConfig) {
		c.keyStoreDir = dir
	}
}

// WithErrorHandler sets a callback invoked with every terminal operation
// error before it is returned. Presentation of errors belongs to the caller;
// the SDK itself never displays anything.
func WithErrorHandler(fn func(error)) Option {
	return func(c *clientConfig) {
		c.onError = fn
	}
}

// WithPassphrase encrypts the secret client-side with a key derived from the
// passphrase before transmission.
func WithPassphrase(passphrase string) SecretOption {
	return func(c *secretConfig) {
		c.passphrase = passphrase
	}
}

// WithExpiry sets the burn deadline. Defaults to 24 hours.
func WithExpiry(expiry time.Duration) SecretOption {
	return func(c *secretConfig) {
		c.expiry = expiry
	}
}

// WithEndToEnd generates an RSA keypair for the request so the fulfiller
// encrypts client-side and the server never sees plaintext. The private half
// is cached locally until the request's burn deadline.
func WithEndToEnd() SecretOption {
	return func(c *secretConfig) {
		c.endToEnd = true
	}
}

// WithDelivery requests email delivery of the share link. The verified token
// comes from a completed email verification exchange.
func WithDelivery(toEmail, fromEmail, verifiedToken string) SecretOption {
	return func(c *secretConfig) {
		c.toEmail = toEmail
		c.fromEmail = fromEmail
		c.verifiedToken = verifiedToken
	}
}
