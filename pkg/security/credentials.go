package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	digits       = "0123456789"
	alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	usernameSuffixLen = 4
	generatedPassLen  = 8
)

// UsernameBase builds the deterministic part of a generated username
// from a person's name, e.g. "jane.doe".
func UsernameBase(firstName, lastName string) string {
	return strings.ToLower(strings.TrimSpace(firstName)) + "." + strings.ToLower(strings.TrimSpace(lastName))
}

// GenerateUsername appends a random 4-digit suffix to the username base.
// Callers retry with a fresh suffix on collision.
func GenerateUsername(base string) (string, error) {
	suffix, err := randomString(digits, usernameSuffixLen)
	if err != nil {
		return "", fmt.Errorf("failed to generate username suffix: %w", err)
	}
	return base + "." + suffix, nil
}

// GeneratePassword returns a random 8-character alphanumeric password
func GeneratePassword() (string, error) {
	pass, err := randomString(alphanumeric, generatedPassLen)
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	return pass, nil
}

func randomString(charset string, length int) (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(charset)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(charset[n.Int64()])
	}
	return sb.String(), nil
}
