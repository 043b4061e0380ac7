package secretbin

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/secretbin/client-go/internal/api"
	"github.com/secretbin/client-go/internal/crypto"
)

// RequestHandle describes a successfully created secret request. SecretLink
// is kept by the requester; RequestLink is handed to whoever will provide
// the secret.
type RequestHandle struct {
	SecretID    string
	RequestID   string
	SecretLink  string
	RequestLink string
	BurnAt      time.Time
	EndToEnd    bool
}

// FulfilmentChallenge is what a fulfiller receives when opening a request:
// the single-use fulfilment id and, for end-to-end requests, the public key
// to encrypt under.
type FulfilmentChallenge struct {
	RequestID    string
	FulfilmentID string
	PublicKeyPEM string
}

// CreateRequest creates a placeholder for a secret someone else will
// provide. With WithEndToEnd a 4096-bit RSA keypair is generated (this takes
// seconds by design); only the public half is submitted, and the private
// half is cached in the key store under the returned secret id until the
// request's burn deadline.
func (l *Lifecycle) CreateRequest(ctx context.Context, opts ...SecretOption) (*RequestHandle, error) {
	cfg := &secretConfig{expiry: defaultExpiry}
	for _, opt := range opts {
		opt(cfg)
	}

	var keypair *crypto.Keypair
	if cfg.endToEnd {
		l.client.log.Debug("generating request keypair")
		var err error
		keypair, err = crypto.GenerateKeypair()
		if err != nil {
			l.state = StateFailed
			return nil, l.client.fail(err)
		}
	}

	req := &api.CreateRequestRequest{
		ExpirySeconds: int(cfg.expiry.Seconds()),
		Passphrase:    cfg.passphrase,
		VerifiedToken: cfg.verifiedToken,
		ToEmail:       cfg.toEmail,
		FromEmail:     cfg.fromEmail,
	}
	if keypair != nil {
		req.PublicKey = keypair.PublicKeyPEM
	}

	l.state = StateSubmitting
	resp, err := l.client.apiClient.CreateRequest(ctx, req)
	if err != nil {
		l.state = StateFailed
		return nil, l.client.fail(err)
	}

	burnAt := time.Unix(resp.BurnAt, 0)
	if keypair != nil {
		// Without the cached private half the fulfilled secret could never
		// be read, so a failed Put fails the whole operation.
		if err := l.client.keys.Put(resp.SecretID, keypair.PrivateKeyPEM, burnAt); err != nil {
			l.state = StateFailed
			return nil, l.client.fail(err)
		}
	}

	l.Reset()
	l.secretID = resp.SecretID
	l.secretLink = l.client.SecretLink(resp.SecretID)
	l.requestLink = l.client.RequestLink(resp.RequestID)
	l.burnAt = burnAt
	if cfg.endToEnd {
		l.mode = ModePublicKey
	} else {
		l.mode = ModePlain
	}
	l.state = StateAwaitingFulfilment

	l.client.log.Debug("request created",
		zap.String("requestId", resp.RequestID),
		zap.String("secretId", resp.SecretID),
		zap.Bool("endToEnd", cfg.endToEnd))

	return &RequestHandle{
		SecretID:    resp.SecretID,
		RequestID:   resp.RequestID,
		SecretLink:  l.secretLink,
		RequestLink: l.requestLink,
		BurnAt:      burnAt,
		EndToEnd:    cfg.endToEnd,
	}, nil
}

// RetrieveRequest opens a request from the fulfiller's side and returns its
// fulfilment challenge. An absent or expired request is terminal: the caller
// reports it and stops, there is nothing to retry.
func (l *Lifecycle) RetrieveRequest(ctx context.Context, requestID string) (*FulfilmentChallenge, error) {
	if requestID == "" {
		l.state = StateFailed
		return nil, l.client.fail(&ValidationError{Fields: []string{"requestId"}})
	}

	l.fulfilmentReady = false
	l.state = StateRetrieving

	resp, err := l.client.apiClient.RetrieveRequest(ctx, &api.RetrieveRequestRequest{
		RequestID: requestID,
	})
	if err != nil {
		l.state = StateFailed
		return nil, l.client.fail(err)
	}

	l.fulfilmentID = resp.FulfilmentID
	l.requestPublicKey = resp.PublicKey
	l.fulfilmentReady = true
	l.state = StateAwaitingFulfilment

	l.client.log.Debug("request retrieved",
		zap.String("requestId", requestID),
		zap.Bool("endToEnd", resp.PublicKey != ""))

	return &FulfilmentChallenge{
		RequestID:    resp.RequestID,
		FulfilmentID: resp.FulfilmentID,
		PublicKeyPEM: resp.PublicKey,
	}, nil
}

// FulfilRequest satisfies the request previously opened with
// RetrieveRequest. When the challenge carried a public key the text is
// encrypted under it before submission, so the server only relays
// ciphertext. The fulfilment id is consumed exactly once server-side; any
// failure, including a second attempt, is terminal and must not be retried.
func (l *Lifecycle) FulfilRequest(ctx context.Context, requestID, text string, opts ...SecretOption) error {
	l.fulfilmentOK = false

	var missing []string
	if l.fulfilmentID == "" {
		missing = append(missing, "fulfilmentId")
	}
	if text == "" {
		missing = append(missing, "secretText")
	}
	if len(missing) > 0 {
		l.state = StateFailed
		return l.client.fail(&ValidationError{Fields: missing})
	}

	cfg := &secretConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	mode := ModePlain
	payload := text
	if l.requestPublicKey != "" {
		mode = ModePublicKey
		pub, err := crypto.ImportPublicKey(l.requestPublicKey)
		if err != nil {
			l.state = StateFailed
			return l.client.fail(err)
		}
		payload, err = crypto.EncryptOAEP(pub, []byte(text))
		if err != nil {
			l.state = StateFailed
			return l.client.fail(err)
		}
	}

	l.state = StateSubmitting
	_, err := l.client.apiClient.FulfilRequest(ctx, &api.FulfilRequestRequest{
		RequestID:     requestID,
		FulfilmentID:  l.fulfilmentID,
		SecretText:    payload,
		VerifiedToken: cfg.verifiedToken,
		ToEmail:       cfg.toEmail,
		FromEmail:     cfg.fromEmail,
	})
	if err != nil {
		l.state = StateFailed
		return l.client.fail(err)
	}

	l.Reset()
	l.fulfilmentOK = true
	l.mode = mode
	l.state = StateFulfilled

	l.client.log.Debug("request fulfilled",
		zap.String("requestId", requestID),
		zap.String("mode", string(mode)))

	return nil
}
