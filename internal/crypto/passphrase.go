package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/secretbin/client-go/internal/codec"
)

// DeriveMaterial derives the AES key and CBC IV from a passphrase alone.
// The IV is the first 16 bytes of SHA-256(passphrase); the key is
// PBKDF2-HMAC-SHA256 over the passphrase with a fixed zero-filled salt.
// Identical passphrases always derive identical material, which is what lets
// the recipient decrypt with nothing but the passphrase.
func DeriveMaterial(passphrase string) (key, iv []byte) {
	digest := sha256.Sum256([]byte(passphrase))
	iv = digest[:AESIVSize]

	salt := make([]byte, PassphraseSaltSize)
	key = pbkdf2.Key([]byte(passphrase), salt, PBKDF2Iterations, AESKeySize, sha256.New)
	return key, iv
}

// EncryptPassphrase encrypts plaintext with AES-256-CBC under material
// derived from the passphrase and returns hex ciphertext.
func EncryptPassphrase(plaintext, passphrase string) (string, error) {
	key, iv := DeriveMaterial(passphrase)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return codec.HexEncode(ciphertext), nil
}

// DecryptPassphrase decrypts hex ciphertext produced by EncryptPassphrase.
// A wrong passphrase fails the padding check and surfaces as ErrDecryption,
// indistinguishable from corrupted ciphertext.
func DecryptPassphrase(hexCiphertext, passphrase string) (string, error) {
	ciphertext, err := codec.HexDecode(hexCiphertext)
	if err != nil {
		return "", err
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", ErrDecryption
	}

	key, iv := DeriveMaterial(passphrase)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		return "", ErrDecryption
	}
	return string(plaintext), nil
}

// pkcs7Pad appends PKCS#7 padding up to the block size.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

// pkcs7Unpad validates and strips PKCS#7 padding.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrDecryption
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, ErrDecryption
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrDecryption
		}
	}
	return data[:len(data)-n], nil
}
