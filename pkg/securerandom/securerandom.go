package securerandom

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GetRandomBytes returns n cryptographically secure random bytes.
func GetRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// MustGetRandomBytes is like GetRandomBytes but panics on error.
func MustGetRandomBytes(n int) []byte {
	b, err := GetRandomBytes(n)
	if err != nil {
		panic(fmt.Sprintf("securerandom.MustGetRandomBytes: %v", err))
	}
	return b
}

// Bytes fills the given slice with random bytes from a cryptographically secure source.
// If the crypto/rand source fails, it returns an error instead of falling back to
// an insecure source.
func Bytes(b []byte) error {
	_, err := rand.Read(b)
	if err != nil {
		return fmt.Errorf("failed to generate secure random bytes: %w", err)
	}
	return nil
}

// Token returns a hex-encoded identifier built from n cryptographically
// secure random bytes. Tokens are effectively unique and never reused.
func Token(n int) (string, error) {
	b, err := GetRandomBytes(n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// MustToken is like Token but panics on error.
// Use this only when an error is truly unexpected and would be fatal to the program.
func MustToken(n int) string {
	t, err := Token(n)
	if err != nil {
		panic(fmt.Sprintf("securerandom.MustToken: %v", err))
	}
	return t
}
