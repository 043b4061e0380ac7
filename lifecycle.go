package secretbin

import "time"

// State is the lifecycle phase of a Lifecycle instance. Creation runs
// Idle → Composing → Submitting → Delivered|Failed; requests additionally
// pass through AwaitingFulfilment → Fulfilled|Failed; retrieval runs
// Idle → Retrieving → Revealed|Burnt|Failed.
type State string

// Lifecycle states.
const (
	StateIdle               State = "idle"
	StateComposing          State = "composing"
	StateSubmitting         State = "submitting"
	StateDelivered          State = "delivered"
	StateAwaitingFulfilment State = "awaiting-fulfilment"
	StateFulfilled          State = "fulfilled"
	StateRetrieving         State = "retrieving"
	StateRevealed           State = "revealed"
	StateBurnt              State = "burnt"
	StateFailed             State = "failed"
)

// EncryptionMode says how a secret's payload is protected. It is decided
// once at creation time and carried through the object, so the two encrypted
// modes cannot be combined or inferred inconsistently from separate flags.
type EncryptionMode string

// Encryption modes.
const (
	// ModePlain sends the payload under transport encryption only.
	ModePlain EncryptionMode = "plain"
	// ModePassphrase encrypts client-side with a passphrase-derived key.
	ModePassphrase EncryptionMode = "passphrase"
	// ModePublicKey encrypts client-side under a request's RSA public key.
	ModePublicKey EncryptionMode = "public-key"
)

// Field names a resettable Lifecycle field for Reset's retain list.
type Field string

// Resettable fields.
const (
	FieldSecretText       Field = "secretText"
	FieldSecretLink       Field = "secretLink"
	FieldSecretID         Field = "secretId"
	FieldPassphrase       Field = "passphrase"
	FieldRequestLink      Field = "requestLink"
	FieldRequestPublicKey Field = "requestPublicKey"
	FieldFulfilmentID     Field = "fulfilmentId"
	FieldFulfilmentReady  Field = "fulfilmentReady"
	FieldFulfilmentOK     Field = "fulfilmentOk"
	FieldBurnAt           Field = "burnAt"
)

// Lifecycle is the client-side state machine for one secret, request or
// retrieval flow. It is not safe for concurrent use: each operation fully
// resolves before the next is invoked, mirroring the single-caller UI model.
type Lifecycle struct {
	client *Client

	state State
	mode  EncryptionMode

	secretText       string
	secretID         string
	secretLink       string
	passphrase       string
	requestLink      string
	requestPublicKey string
	fulfilmentID     string
	fulfilmentReady  bool
	fulfilmentOK     bool
	burnAt           time.Time
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() State { return l.state }

// Mode returns the encryption mode decided at creation time.
func (l *Lifecycle) Mode() EncryptionMode { return l.mode }

// SecretID returns the id of the created or retrieved secret.
func (l *Lifecycle) SecretID() string { return l.secretID }

// SecretLink returns the shareable retrieval link.
func (l *Lifecycle) SecretLink() string { return l.secretLink }

// RequestLink returns the shareable fulfilment link.
func (l *Lifecycle) RequestLink() string { return l.requestLink }

// RequestPublicKey returns the public key received with a fulfilment
// challenge, or empty for non end-to-end requests.
func (l *Lifecycle) RequestPublicKey() string { return l.requestPublicKey }

// FulfilmentID returns the single-use fulfilment id of a retrieved request.
func (l *Lifecycle) FulfilmentID() string { return l.fulfilmentID }

// FulfilmentReady reports whether a fulfilment challenge has been retrieved.
func (l *Lifecycle) FulfilmentReady() bool { return l.fulfilmentReady }

// FulfilmentOK reports whether a fulfilment was accepted.
func (l *Lifecycle) FulfilmentOK() bool { return l.fulfilmentOK }

// BurnAt returns the burn deadline of the current object.
func (l *Lifecycle) BurnAt() time.Time { return l.burnAt }

// Reset clears all mutable fields to their zero values, except fields named
// in retain. It is used to wipe secret material from memory while preserving
// a just-produced share link across a UI reset. The reset is an explicit
// per-field conditional over the fixed field set above; fields outside the
// set (state, mode) always reset.
func (l *Lifecycle) Reset(retain ...Field) {
	keep := make(map[Field]bool, len(retain))
	for _, f := range retain {
		keep[f] = true
	}

	if !keep[FieldSecretText] {
		l.secretText = ""
	}
	if !keep[FieldSecretLink] {
		l.secretLink = ""
	}
	if !keep[FieldSecretID] {
		l.secretID = ""
	}
	if !keep[FieldPassphrase] {
		l.passphrase = ""
	}
	if !keep[FieldRequestLink] {
		l.requestLink = ""
	}
	if !keep[FieldRequestPublicKey] {
		l.requestPublicKey = ""
	}
	if !keep[FieldFulfilmentID] {
		l.fulfilmentID = ""
	}
	if !keep[FieldFulfilmentReady] {
		l.fulfilmentReady = false
	}
	if !keep[FieldFulfilmentOK] {
		l.fulfilmentOK = false
	}
	if !keep[FieldBurnAt] {
		l.burnAt = time.Time{}
	}

	l.state = StateIdle
	l.mode = ""
}
