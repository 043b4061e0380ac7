package secretbin

import (
	"crypto/rand"
	"fmt"

	"github.com/secretbin/client-go/internal/codec"
)

// randomSecretBytes is the entropy of a generated secret: 16 bytes, rendered
// as 32 hex characters.
const randomSecretBytes = 16

// GenerateRandomSecret produces a random secret value for callers who want
// the service to invent one, e.g. an initial password.
func GenerateRandomSecret() (string, error) {
	buf := make([]byte, randomSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate random secret: %w", err)
	}
	return codec.HexEncode(buf), nil
}
