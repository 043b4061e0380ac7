// Package crypto implements the two client-side encryption primitives of the
// secretbin protocol.
//
// The asymmetric path uses 4096-bit RSA-OAEP with SHA-256, with keys
// serialized as SPKI/PKCS#8 PEM. It backs end-to-end secret requests: the
// requester generates the keypair, hands out only the public half, and the
// server relays ciphertext it cannot open.
//
// The symmetric path derives an AES-256-CBC key and IV deterministically from
// a passphrase alone (PBKDF2-HMAC-SHA256 over a fixed zero salt, IV from
// SHA-256 of the passphrase). Derivation is intentionally salt-free so the
// receiving party can decrypt with nothing but the shared passphrase; the
// resulting dictionary-attack exposure is an accepted protocol property, not
// something to patch here without a way to transmit a salt.
//
// Both paths are wire-compatible with the browser client (WebCrypto
// RSA-OAEP/SHA-256 and AES-CBC with PKCS#7 padding).
package crypto
