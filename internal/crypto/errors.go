package crypto

import "errors"

var (
	// ErrKeyImport is returned when PEM key material does not parse into an
	// RSA key of the expected structure.
	ErrKeyImport = errors.New("invalid key material")

	// ErrDecryption is returned when decryption fails. Wrong key, wrong
	// passphrase and corrupted ciphertext are deliberately indistinguishable.
	ErrDecryption = errors.New("decryption failed")

	// ErrPayloadTooLarge is returned when a plaintext exceeds the OAEP
	// capacity of the public key.
	ErrPayloadTooLarge = errors.New("payload exceeds encryption capacity")
)
