package secretbin

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/secretbin/client-go/internal/api"
	"github.com/secretbin/client-go/internal/crypto"
)

// Client is the secretbin client. It owns the transport, the private key
// cache and the share-link builder; lifecycle state lives in Lifecycle
// instances created from it.
type Client struct {
	apiClient *api.Client
	keys      *KeyStore
	log       *zap.Logger
	linkBase  string
	onError   func(error)
}

// New creates a new secretbin client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	apiOpts := []api.Option{}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}
	if cfg.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(cfg.httpClient))
	}

	apiClient, err := api.New(cfg.baseURL, apiOpts...)
	if err != nil {
		return nil, err
	}

	keys := cfg.keyStore
	if keys == nil {
		dir := cfg.keyStoreDir
		if dir == "" {
			dir, err = DefaultKeyStoreDir()
			if err != nil {
				return nil, err
			}
		}
		keys, err = NewKeyStore(dir)
		if err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	linkBase := cfg.linkBaseURL
	if linkBase == "" {
		linkBase = cfg.baseURL
	}

	c := &Client{
		apiClient: apiClient,
		keys:      keys,
		log:       logger,
		linkBase:  strings.TrimRight(linkBase, "/"),
		onError:   cfg.onError,
	}

	// Expired private keys are useless; their secrets are gone server-side.
	if err := keys.Sweep(); err != nil {
		c.log.Warn("key store sweep failed", zap.Error(err))
	}

	return c, nil
}

// KeyStore returns the private key cache.
func (c *Client) KeyStore() *KeyStore {
	return c.keys
}

// SecretLink builds the shareable retrieval link for a secret id.
func (c *Client) SecretLink(secretID string) string {
	return fmt.Sprintf("%s/retrieve-secret/%s", c.linkBase, secretID)
}

// RequestLink builds the shareable fulfilment link for a request id.
func (c *Client) RequestLink(requestID string) string {
	return fmt.Sprintf("%s/fulfil-request/%s", c.linkBase, requestID)
}

// DecryptWithStoredKey decrypts an end-to-end encrypted payload using the
// private key cached when the request was created. Returns ErrNoStoredKey if
// the key is absent or already swept, and ErrDecryptionFailed if the
// ciphertext was not produced under the cached key.
func (c *Client) DecryptWithStoredKey(secretID, b64Ciphertext string) (string, error) {
	pemKey, err := c.keys.Get(secretID)
	if err != nil {
		return "", err
	}
	priv, err := crypto.ImportPrivateKey(pemKey)
	if err != nil {
		return "", err
	}
	plaintext, err := crypto.DecryptOAEP(priv, b64Ciphertext)
	if err != nil {
		return "", err
	}
	c.log.Debug("decrypted secret with cached key", zap.String("secretId", secretID))
	return string(plaintext), nil
}

// NewLifecycle creates a fresh lifecycle state machine bound to this client.
func (c *Client) NewLifecycle() *Lifecycle {
	return &Lifecycle{
		client: c,
		state:  StateIdle,
	}
}

// fail wraps an error into its public form and reports it to the configured
// error handler, if any. The error is still returned to the caller; the
// handler only exists so a UI layer can own presentation.
func (c *Client) fail(err error) error {
	err = wrapError(err)
	if c.onError != nil {
		c.onError(err)
	}
	return err
}
