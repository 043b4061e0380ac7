package secretbin

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/secretbin/client-go/internal/api"
	"github.com/secretbin/client-go/internal/crypto"
)

// SecretHandle describes a successfully created secret.
type SecretHandle struct {
	SecretID   string
	SecretLink string
	BurnAt     time.Time
	Mode       EncryptionMode

	// EmailWarning is set when the secret was stored but the requested
	// email delivery failed. The secret itself is fine; only the
	// notification went missing.
	EmailWarning string
}

// PlainSecret is a retrieved secret payload. For passphrase-protected
// secrets Text is the decrypted plaintext. For end-to-end secrets Text is
// still the RSA ciphertext and PKIEncrypted is true: the private key may
// live outside this instance, so decryption is the caller's explicit step
// via Client.DecryptWithStoredKey.
type PlainSecret struct {
	SecretID     string
	Text         string
	BurnAt       time.Time
	Mode         EncryptionMode
	PKIEncrypted bool
}

// CreateSecret stores a one-time secret and returns its share link. With
// WithPassphrase the text is encrypted client-side before transmission and
// the passphrase is wiped from lifecycle state once the secret is stored.
// Empty text fails with a ValidationError before any network call.
func (l *Lifecycle) CreateSecret(ctx context.Context, text string, opts ...SecretOption) (*SecretHandle, error) {
	l.state = StateComposing

	if text == "" {
		l.state = StateFailed
		return nil, l.client.fail(&ValidationError{Fields: []string{"secretText"}})
	}

	cfg := &secretConfig{expiry: defaultExpiry}
	for _, opt := range opts {
		opt(cfg)
	}

	mode := ModePlain
	payload := text
	if cfg.passphrase != "" {
		mode = ModePassphrase
		encrypted, err := crypto.EncryptPassphrase(text, cfg.passphrase)
		if err != nil {
			l.state = StateFailed
			return nil, l.client.fail(err)
		}
		payload = encrypted
	}

	l.state = StateSubmitting
	resp, err := l.client.apiClient.CreateSecret(ctx, &api.CreateSecretRequest{
		SecretText:    payload,
		ExpirySeconds: int(cfg.expiry.Seconds()),
		Passphrase:    cfg.passphrase,
		VerifiedToken: cfg.verifiedToken,
		ToEmail:       cfg.toEmail,
		FromEmail:     cfg.fromEmail,
	})
	if err != nil {
		l.state = StateFailed
		return nil, l.client.fail(err)
	}

	// Wipe the composed text and passphrase; only the share link survives.
	l.Reset()
	l.secretID = resp.SecretID
	l.secretLink = l.client.SecretLink(resp.SecretID)
	l.burnAt = time.Unix(resp.BurnAt, 0)
	l.mode = mode
	l.state = StateDelivered

	handle := &SecretHandle{
		SecretID:   resp.SecretID,
		SecretLink: l.secretLink,
		BurnAt:     l.burnAt,
		Mode:       mode,
	}
	if resp.EmailResponse != "" && resp.EmailResponse != "ok" {
		handle.EmailWarning = resp.EmailResponse
		l.client.log.Warn("secret stored but email delivery failed",
			zap.String("secretId", resp.SecretID),
			zap.String("emailResponse", resp.EmailResponse))
	}

	l.client.log.Debug("secret created",
		zap.String("secretId", resp.SecretID),
		zap.String("mode", string(mode)))

	return handle, nil
}

// RetrieveSecret fetches and reveals a secret. Retrieval is one-shot: the
// server destroys the secret on first success, and a later attempt surfaces
// ErrBurnt or ErrNotFound, never plaintext. Both land the lifecycle in
// StateBurnt: a secret that never existed, one that expired and one that was
// already read are presented identically, so the state cannot leak whether an
// id was ever valid. Passphrase-protected payloads
// are decrypted inline with the WithPassphrase option; a wrong passphrase is
// indistinguishable from corrupted ciphertext.
func (l *Lifecycle) RetrieveSecret(ctx context.Context, secretID string, opts ...SecretOption) (*PlainSecret, error) {
	if secretID == "" {
		l.state = StateFailed
		return nil, l.client.fail(&ValidationError{Fields: []string{"secretId"}})
	}

	cfg := &secretConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	l.state = StateRetrieving
	resp, err := l.client.apiClient.RetrieveSecret(ctx, &api.RetrieveSecretRequest{
		SecretID:   secretID,
		Passphrase: cfg.passphrase,
	})
	if err != nil {
		if errors.Is(err, ErrBurnt) || errors.Is(err, ErrNotFound) {
			l.state = StateBurnt
		} else {
			l.state = StateFailed
		}
		return nil, l.client.fail(err)
	}

	secret := &PlainSecret{
		SecretID: secretID,
		Text:     resp.SecretText,
		BurnAt:   time.Unix(resp.BurnAt, 0),
		Mode:     ModePlain,
	}

	switch {
	case resp.PKIEncrypted:
		secret.Mode = ModePublicKey
		secret.PKIEncrypted = true
	case resp.PassphraseEncrypted:
		secret.Mode = ModePassphrase
		plaintext, err := crypto.DecryptPassphrase(resp.SecretText, cfg.passphrase)
		if err != nil {
			l.state = StateFailed
			return nil, l.client.fail(err)
		}
		secret.Text = plaintext
	}

	l.secretID = secretID
	l.secretText = secret.Text
	l.burnAt = secret.BurnAt
	l.mode = secret.Mode
	l.state = StateRevealed

	l.client.log.Debug("secret retrieved",
		zap.String("secretId", secretID),
		zap.String("mode", string(secret.Mode)))

	return secret, nil
}
