// Package credentials derives and verifies salted password digests.
package credentials

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/sbilibin2017/kmlog/internal/models"
)

// SaltSize is the number of random bytes in a fresh salt.
const SaltSize = 8

// NewSalt reads SaltSize bytes from r and returns them base64 encoded.
func NewSalt(r io.Reader) (string, error) {
	buf := make([]byte, SaltSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// Hash returns base64(SHA-256(password || salt)). The salt is used in its
// stored base64 form so digests match files written by earlier releases.
func Hash(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// New creates credentials for password with a fresh salt drawn from r.
func New(r io.Reader, password string) (models.User, error) {
	salt, err := NewSalt(r)
	if err != nil {
		return models.User{}, err
	}
	return models.User{Hash: Hash(password, salt), Salt: salt}, nil
}

// Verify reports whether password matches the stored credentials.
func Verify(user models.User, password string) bool {
	got := Hash(password, user.Salt)
	return subtle.ConstantTimeCompare([]byte(got), []byte(user.Hash)) == 1
}
