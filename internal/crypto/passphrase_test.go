package crypto

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"strings"
	"testing"

	"github.com/secretbin/client-go/internal/codec"
)

func TestDeriveMaterial_Deterministic(t *testing.T) {
	key1, iv1 := DeriveMaterial("correct horse battery staple")
	key2, iv2 := DeriveMaterial("correct horse battery staple")

	if len(key1) != AESKeySize {
		t.Errorf("key length = %d, want %d", len(key1), AESKeySize)
	}
	if len(iv1) != AESIVSize {
		t.Errorf("iv length = %d, want %d", len(iv1), AESIVSize)
	}
	if !bytes.Equal(key1, key2) || !bytes.Equal(iv1, iv2) {
		t.Error("same passphrase derived different material")
	}

	otherKey, otherIV := DeriveMaterial("different passphrase")
	if bytes.Equal(key1, otherKey) {
		t.Error("different passphrases derived the same key")
	}
	if bytes.Equal(iv1, otherIV) {
		t.Error("different passphrases derived the same iv")
	}
}

func TestDeriveMaterial_IVIsPassphraseDigest(t *testing.T) {
	digest := sha256.Sum256([]byte("hunter2"))

	_, iv := DeriveMaterial("hunter2")
	if !bytes.Equal(iv, digest[:AESIVSize]) {
		t.Errorf("iv = %x, want first %d bytes of SHA-256(passphrase)", iv, AESIVSize)
	}
}

func TestEncryptPassphrase_DecryptPassphrase_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
	}{
		{"empty", ""},
		{"short", "pin 1234"},
		{"block aligned", strings.Repeat("a", 32)},
		{"unicode", "gëhéim 🔑"},
		{"long", strings.Repeat("the quick brown fox ", 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ciphertext, err := EncryptPassphrase(tt.plaintext, "open sesame")
			if err != nil {
				t.Fatalf("EncryptPassphrase() error = %v", err)
			}

			// Ciphertext is hex and always a whole number of AES blocks.
			raw, err := codec.HexDecode(ciphertext)
			if err != nil {
				t.Fatalf("ciphertext is not hex: %v", err)
			}
			if len(raw)%16 != 0 {
				t.Errorf("ciphertext length %d is not block aligned", len(raw))
			}

			decrypted, err := DecryptPassphrase(ciphertext, "open sesame")
			if err != nil {
				t.Fatalf("DecryptPassphrase() error = %v", err)
			}
			if decrypted != tt.plaintext {
				t.Errorf("decrypted = %q, want %q", decrypted, tt.plaintext)
			}
		})
	}
}

func TestEncryptPassphrase_Deterministic(t *testing.T) {
	a, err := EncryptPassphrase("same secret", "same passphrase")
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncryptPassphrase("same secret", "same passphrase")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("identical inputs produced different ciphertexts")
	}
}

func TestDecryptPassphrase_WrongPassphrase(t *testing.T) {
	ciphertext, err := EncryptPassphrase("the real secret", "right")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := DecryptPassphrase(ciphertext, "wrong"); !errors.Is(err, ErrDecryption) {
		t.Errorf("expected ErrDecryption, got %v", err)
	}
}

func TestDecryptPassphrase_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{"not hex", "zz", codec.ErrDecode},
		{"empty", "", ErrDecryption},
		{"not block aligned", "abcd", ErrDecryption},
		{"corrupted padding", func() string {
			c, _ := EncryptPassphrase("x", "p")
			raw, _ := codec.HexDecode(c)
			raw[len(raw)-1] ^= 0x01
			return codec.HexEncode(raw)
		}(), ErrDecryption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecryptPassphrase(tt.in, "p")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPKCS7Pad_Unpad(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"one byte", []byte{0x01}},
		{"block minus one", bytes.Repeat([]byte{0x02}, 15)},
		{"exact block", bytes.Repeat([]byte{0x03}, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			padded := pkcs7Pad(tt.data, 16)
			if len(padded)%16 != 0 {
				t.Fatalf("padded length %d is not block aligned", len(padded))
			}
			if len(padded) == len(tt.data) {
				t.Fatal("padding added zero bytes")
			}

			unpadded, err := pkcs7Unpad(padded, 16)
			if err != nil {
				t.Fatalf("pkcs7Unpad() error = %v", err)
			}
			if !bytes.Equal(unpadded, tt.data) {
				t.Errorf("unpadded = %v, want %v", unpadded, tt.data)
			}
		})
	}
}

func TestPKCS7Unpad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"zero pad byte", append(bytes.Repeat([]byte{0x00}, 15), 0x00)},
		{"pad byte too large", append(bytes.Repeat([]byte{0x00}, 15), 0x11)},
		{"inconsistent padding", append(bytes.Repeat([]byte{0x00}, 14), 0x01, 0x02)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := pkcs7Unpad(tt.data, 16); !errors.Is(err, ErrDecryption) {
				t.Errorf("expected ErrDecryption, got %v", err)
			}
		})
	}
}
