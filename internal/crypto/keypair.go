package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"

	"github.com/secretbin/client-go/internal/codec"
)

// Keypair holds a generated RSA-OAEP keypair in PEM form. The private half
// never leaves the client; the public half is what gets attached to a secret
// request.
type Keypair struct {
	// PublicKeyPEM is the SPKI DER public key in PEM form.
	PublicKeyPEM string
	// PrivateKeyPEM is the PKCS#8 DER private key in PEM form.
	PrivateKeyPEM string
}

// GenerateKeypair creates a new 4096-bit RSA keypair for OAEP/SHA-256 with
// public exponent 65537 and exports both halves as PEM.
func GenerateKeypair() (*Keypair, error) {
	priv, err := rsa.GenerateKey(rand.Reader, RSAKeyBits)
	if err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}

	pubPEM, err := ExportPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, err
	}
	privPEM, err := ExportPrivateKey(priv)
	if err != nil {
		return nil, err
	}

	return &Keypair{
		PublicKeyPEM:  pubPEM,
		PrivateKeyPEM: privPEM,
	}, nil
}

// ExportPublicKey serializes a public key as SPKI DER wrapped in PEM.
func ExportPublicKey(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("export public key: %w", err)
	}
	return codec.PEMEncode(PublicKeyLabel, der), nil
}

// ExportPrivateKey serializes a private key as PKCS#8 DER wrapped in PEM.
func ExportPrivateKey(priv *rsa.PrivateKey) (string, error) {
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return "", fmt.Errorf("export private key: %w", err)
	}
	return codec.PEMEncode(PrivateKeyLabel, der), nil
}

// ImportPublicKey parses a PEM-wrapped SPKI public key. Non-RSA keys and
// malformed DER fail with ErrKeyImport.
func ImportPublicKey(pemData string) (*rsa.PublicKey, error) {
	der, err := codec.PEMDecode(pemData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyImport, err)
	}
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: not a valid SPKI structure", ErrKeyImport)
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA public key", ErrKeyImport)
	}
	return pub, nil
}

// ImportPrivateKey parses a PEM-wrapped PKCS#8 private key. Non-RSA keys and
// malformed DER fail with ErrKeyImport.
func ImportPrivateKey(pemData string) (*rsa.PrivateKey, error) {
	der, err := codec.PEMDecode(pemData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyImport, err)
	}
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: not a valid PKCS#8 structure", ErrKeyImport)
	}
	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA private key", ErrKeyImport)
	}
	return priv, nil
}

// maxPlaintextFor returns the OAEP capacity of the given key. For generated
// keys this equals MaxOAEPPlaintext, but imported keys may be smaller.
func maxPlaintextFor(pub *rsa.PublicKey) int {
	return pub.Size() - oaepOverhead
}

// EncryptOAEP encrypts plaintext under the public key and returns standard
// base64 ciphertext. Plaintext beyond the key's OAEP capacity fails fast with
// ErrPayloadTooLarge rather than silently truncating.
func EncryptOAEP(pub *rsa.PublicKey, plaintext []byte) (string, error) {
	if limit := maxPlaintextFor(pub); len(plaintext) > limit {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, len(plaintext), limit)
	}
	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, nil)
	if err != nil {
		return "", fmt.Errorf("encrypt: %w", err)
	}
	return codec.Base64Encode(ciphertext), nil
}

// DecryptOAEP decrypts base64 ciphertext with the private key. A key mismatch
// and corrupted ciphertext both surface as ErrDecryption; callers must not
// present them differently.
func DecryptOAEP(priv *rsa.PrivateKey, b64Ciphertext string) ([]byte, error) {
	ciphertext, err := codec.Base64Decode(b64Ciphertext)
	if err != nil {
		return nil, err
	}
	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryption
	}
	return plaintext, nil
}
