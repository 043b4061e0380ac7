package secretbin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/secretbin/client-go/internal/api"
)

// fakeServer is an in-memory stand-in for the secretbin API, with the same
// one-shot semantics: secrets burn on first retrieval, fulfilment ids are
// consumed on first use, verification codes exchange for single tokens.
type fakeServer struct {
	t      *testing.T
	server *httptest.Server

	mu            sync.Mutex
	secrets       map[string]*fakeSecret
	requests      map[string]*fakeRequest
	verifications map[string]string
	tokens        map[string]bool
	calls         int

	// failEmailFor makes delivery to this address report a failure while
	// still storing the secret.
	failEmailFor string
}

type fakeSecret struct {
	text                string
	burnAt              int64
	passphraseEncrypted bool
	pkiEncrypted        bool
	burnt               bool
}

type fakeRequest struct {
	secretID     string
	fulfilmentID string
	publicKey    string
	expiry       int
	fulfilled    bool
	burnAt       int64
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{
		t:             t,
		secrets:       make(map[string]*fakeSecret),
		requests:      make(map[string]*fakeRequest),
		verifications: make(map[string]string),
		tokens:        make(map[string]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/secret/", fs.handleCreateSecret)
	mux.HandleFunc("/api/secret/retrieve/", fs.handleRetrieveSecret)
	mux.HandleFunc("/api/request/", fs.handleCreateRequest)
	mux.HandleFunc("/api/request/retrieve/", fs.handleRetrieveRequest)
	mux.HandleFunc("/api/request/fulfil/", fs.handleFulfilRequest)
	mux.HandleFunc("/api/verify/request/", fs.handleRequestVerification)
	mux.HandleFunc("/api/verify/", fs.handleVerify)

	fs.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.calls++
		fs.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(fs.server.Close)
	return fs
}

// callCount returns the number of HTTP requests received so far.
func (fs *fakeServer) callCount() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.calls
}

// issueToken registers a verified token directly, bypassing the exchange.
func (fs *fakeServer) issueToken() string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	token := uuid.NewString()
	fs.tokens[token] = true
	return token
}

func (fs *fakeServer) decode(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		fs.writeError(w, 400, "malformed_body", err.Error())
		return false
	}
	return true
}

func (fs *fakeServer) writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		fs.t.Errorf("encode response: %v", err)
	}
}

func (fs *fakeServer) writeError(w http.ResponseWriter, status int, code string, details ...string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fs.writeJSON(w, map[string]interface{}{
		"status": "error",
		"code":   code,
		"errors": details,
	})
}

func (fs *fakeServer) checkDelivery(w http.ResponseWriter, toEmail, verifiedToken string) (emailResponse string, ok bool) {
	if toEmail == "" {
		return "", true
	}
	if !fs.tokens[verifiedToken] {
		fs.writeError(w, 400, "unverified_email", "toEmail requires a verified token")
		return "", false
	}
	if toEmail == fs.failEmailFor {
		return "delivery failed: mailbox unavailable", true
	}
	return "ok", true
}

func (fs *fakeServer) handleCreateSecret(w http.ResponseWriter, r *http.Request) {
	var req api.CreateSecretRequest
	if !fs.decode(w, r, &req) {
		return
	}
	if req.SecretText == "" {
		fs.writeError(w, 400, "missing_field", "secretText is required")
		return
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	emailResponse, ok := fs.checkDelivery(w, req.ToEmail, req.VerifiedToken)
	if !ok {
		return
	}

	id := uuid.NewString()
	burnAt := time.Now().Add(time.Duration(req.ExpirySeconds) * time.Second).Unix()
	fs.secrets[id] = &fakeSecret{
		text:                req.SecretText,
		burnAt:              burnAt,
		passphraseEncrypted: req.Passphrase != "",
		pkiEncrypted:        req.PublicKey != "",
	}

	fs.writeJSON(w, &api.CreateSecretResponse{
		SecretID:      id,
		BurnAt:        burnAt,
		EmailResponse: emailResponse,
	})
}

func (fs *fakeServer) handleRetrieveSecret(w http.ResponseWriter, r *http.Request) {
	var req api.RetrieveSecretRequest
	if !fs.decode(w, r, &req) {
		return
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	secret, found := fs.secrets[req.SecretID]
	if !found {
		fs.writeError(w, 404, "not_found", "no such secret")
		return
	}
	if secret.burnt {
		fs.writeError(w, 410, "burnt", "secret already retrieved")
		return
	}
	secret.burnt = true

	fs.writeJSON(w, &api.RetrieveSecretResponse{
		SecretText:          secret.text,
		BurnAt:              secret.burnAt,
		PassphraseEncrypted: secret.passphraseEncrypted,
		PKIEncrypted:        secret.pkiEncrypted,
	})
}

func (fs *fakeServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var req api.CreateRequestRequest
	if !fs.decode(w, r, &req) {
		return
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	requestID := uuid.NewString()
	burnAt := time.Now().Add(time.Duration(req.ExpirySeconds) * time.Second).Unix()
	fs.requests[requestID] = &fakeRequest{
		secretID:     uuid.NewString(),
		fulfilmentID: uuid.NewString(),
		publicKey:    req.PublicKey,
		expiry:       req.ExpirySeconds,
		burnAt:       burnAt,
	}

	fs.writeJSON(w, &api.CreateRequestResponse{
		SecretID:  fs.requests[requestID].secretID,
		RequestID: requestID,
		BurnAt:    burnAt,
	})
}

func (fs *fakeServer) handleRetrieveRequest(w http.ResponseWriter, r *http.Request) {
	var req api.RetrieveRequestRequest
	if !fs.decode(w, r, &req) {
		return
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	request, found := fs.requests[req.RequestID]
	if !found {
		fs.writeError(w, 404, "not_found", "no such request")
		return
	}
	if request.fulfilled {
		fs.writeError(w, 410, "burnt", "request already fulfilled")
		return
	}

	fs.writeJSON(w, &api.RetrieveRequestResponse{
		RequestID:    req.RequestID,
		FulfilmentID: request.fulfilmentID,
		PublicKey:    request.publicKey,
	})
}

func (fs *fakeServer) handleFulfilRequest(w http.ResponseWriter, r *http.Request) {
	var req api.FulfilRequestRequest
	if !fs.decode(w, r, &req) {
		return
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	request, found := fs.requests[req.RequestID]
	if !found {
		fs.writeError(w, 404, "not_found", "no such request")
		return
	}
	if request.fulfilled || req.FulfilmentID != request.fulfilmentID {
		fs.writeError(w, 410, "burnt", "fulfilment id already consumed")
		return
	}

	if _, ok := fs.checkDelivery(w, req.ToEmail, req.VerifiedToken); !ok {
		return
	}

	request.fulfilled = true
	fs.secrets[request.secretID] = &fakeSecret{
		text:         req.SecretText,
		burnAt:       request.burnAt,
		pkiEncrypted: request.publicKey != "",
	}

	fs.writeJSON(w, &api.FulfilRequestResponse{
		RequestID: req.RequestID,
		BurnAt:    request.burnAt,
	})
}

func (fs *fakeServer) handleRequestVerification(w http.ResponseWriter, r *http.Request) {
	var req api.VerifyRequestRequest
	if !fs.decode(w, r, &req) {
		return
	}
	if req.ToEmail == "" {
		fs.writeError(w, 400, "missing_field", "toEmail is required")
		return
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	verifyID := uuid.NewString()
	code := uuid.NewString()[:6]
	fs.verifications[verifyID] = code

	fs.writeJSON(w, &api.VerifyRequestResponse{
		VerifyID: verifyID,
		Code:     code,
	})
}

func (fs *fakeServer) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req api.VerifyRequest
	if !fs.decode(w, r, &req) {
		return
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	code, found := fs.verifications[req.VerifyID]
	if !found || code != req.Code {
		fs.writeJSON(w, &api.VerifyResponse{OK: false})
		return
	}
	delete(fs.verifications, req.VerifyID)

	token := uuid.NewString()
	fs.tokens[token] = true
	fs.writeJSON(w, &api.VerifyResponse{
		OK:            true,
		VerifiedToken: token,
	})
}

// newTestClient wires a client to the fake server with an isolated key store.
func newTestClient(t *testing.T, fs *fakeServer, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{
		WithBaseURL(fs.server.URL),
		WithKeyStoreDir(t.TempDir()),
	}, opts...)
	client, err := New(opts...)
	require.NoError(t, err)
	return client
}
