package api

// CreateSecretRequest is the POST /api/secret/ request body. SecretText is
// already passphrase-encrypted by the caller when Passphrase is set.
type CreateSecretRequest struct {
	SecretText    string `json:"secretText"`
	ExpirySeconds int    `json:"expirySeconds"`
	Passphrase    string `json:"passphrase,omitempty"`
	PublicKey     string `json:"publicKey,omitempty"`
	VerifiedToken string `json:"verifiedToken,omitempty"`
	ToEmail       string `json:"toEmail,omitempty"`
	FromEmail     string `json:"fromEmail,omitempty"`
}

// CreateSecretResponse is the POST /api/secret/ response body.
type CreateSecretResponse struct {
	SecretID      string `json:"secretId"`
	BurnAt        int64  `json:"burnAt"`
	EmailResponse string `json:"emailResponse,omitempty"`
}

// RetrieveSecretRequest is the POST /api/secret/retrieve/ request body.
type RetrieveSecretRequest struct {
	SecretID   string `json:"secretId"`
	Passphrase string `json:"passphrase,omitempty"`
}

// RetrieveSecretResponse is the POST /api/secret/retrieve/ response body.
// SecretText is still encrypted when either encryption flag is set.
type RetrieveSecretResponse struct {
	SecretText          string `json:"secretText"`
	BurnAt              int64  `json:"burnAt"`
	PassphraseEncrypted bool   `json:"passphraseEncrypted"`
	PKIEncrypted        bool   `json:"pkiEncrypted"`
}

// CreateRequestRequest is the POST /api/request/ request body.
type CreateRequestRequest struct {
	ExpirySeconds int    `json:"expirySeconds"`
	Passphrase    string `json:"passphrase,omitempty"`
	PublicKey     string `json:"publicKey,omitempty"`
	VerifiedToken string `json:"verifiedToken,omitempty"`
	ToEmail       string `json:"toEmail,omitempty"`
	FromEmail     string `json:"fromEmail,omitempty"`
}

// CreateRequestResponse is the POST /api/request/ response body. SecretID is
// the id the fulfilled secret will eventually be retrievable under.
type CreateRequestResponse struct {
	SecretID  string `json:"secretId"`
	RequestID string `json:"requestId"`
	BurnAt    int64  `json:"burnAt"`
}

// RetrieveRequestRequest is the POST /api/request/retrieve/ request body.
type RetrieveRequestRequest struct {
	RequestID string `json:"requestId"`
}

// RetrieveRequestResponse is the POST /api/request/retrieve/ response body.
// PublicKey is empty unless the requester chose end-to-end mode.
type RetrieveRequestResponse struct {
	RequestID    string `json:"requestId"`
	FulfilmentID string `json:"fulfilmentId"`
	PublicKey    string `json:"publicKey"`
}

// FulfilRequestRequest is the POST /api/request/fulfil/ request body.
// SecretText is already encrypted under the request's public key when one was
// supplied.
type FulfilRequestRequest struct {
	RequestID     string `json:"requestId"`
	FulfilmentID  string `json:"fulfilmentId"`
	SecretText    string `json:"secretText"`
	VerifiedToken string `json:"verifiedToken,omitempty"`
	ToEmail       string `json:"toEmail,omitempty"`
	FromEmail     string `json:"fromEmail,omitempty"`
}

// FulfilRequestResponse is the POST /api/request/fulfil/ response body.
type FulfilRequestResponse struct {
	RequestID string `json:"requestId"`
	BurnAt    int64  `json:"burnAt"`
}

// VerifyRequestRequest is the POST /api/verify/request/ request body.
type VerifyRequestRequest struct {
	ToEmail   string `json:"toEmail"`
	FromEmail string `json:"fromEmail,omitempty"`
}

// VerifyRequestResponse is the POST /api/verify/request/ response body.
type VerifyRequestResponse struct {
	VerifyID string `json:"verifyId"`
	Code     string `json:"code"`
}

// VerifyRequest is the POST /api/verify/ request body.
type VerifyRequest struct {
	VerifyID string `json:"verifyId"`
	Code     string `json:"code"`
}

// VerifyResponse is the POST /api/verify/ response body.
type VerifyResponse struct {
	OK            bool   `json:"ok"`
	VerifiedToken string `json:"verifiedToken"`
}
