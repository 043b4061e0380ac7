package crypto

const (
	// RSAKeyBits is the modulus size of generated keypairs. Generation takes
	// seconds at this size; keys are generated once per request, so latency
	// is traded for long-term strength.
	RSAKeyBits = 4096

	// oaepOverhead is the OAEP padding overhead for SHA-256: 2*hLen + 2.
	oaepOverhead = 2*32 + 2

	// MaxOAEPPlaintext is the largest plaintext encryptable under a
	// RSAKeyBits key with OAEP/SHA-256.
	MaxOAEPPlaintext = RSAKeyBits/8 - oaepOverhead

	// PublicKeyLabel and PrivateKeyLabel are the PEM labels used for
	// exported keys.
	PublicKeyLabel  = "PUBLIC KEY"
	PrivateKeyLabel = "PRIVATE KEY"

	// PBKDF2Iterations is the iteration count for passphrase key derivation.
	PBKDF2Iterations = 100000

	// PassphraseSaltSize is the size of the fixed, zero-filled PBKDF2 salt.
	PassphraseSaltSize = 16

	// AESKeySize is the size of the derived AES-256 key in bytes.
	AESKeySize = 32

	// AESIVSize is the size of the CBC initialization vector in bytes.
	AESIVSize = 16
)
