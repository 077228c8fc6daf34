package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrPasswordTooLong = errors.New("password exceeds maximum length of 72 bytes")
)

// HashPassword creates a bcrypt hash of the password. Used when creating
// librarian accounts out-of-band (create-librarian).
func HashPassword(password string, cost int) (string, error) {
	// bcrypt has a 72-byte limit
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a password with its stored hash. Bcrypt hashes
// are recognized by their "$2" prefix; anything else is treated as a
// legacy hex SHA-256 digest (the format of the seeded admin account) and
// compared in constant time. Plaintext is never compared directly.
func CheckPassword(password, hash string) error {
	if strings.HasPrefix(hash, "$2") {
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
		if err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return ErrInvalidPassword
			}
			return err
		}
		return nil
	}

	digest := sha256.Sum256([]byte(password))
	supplied := hex.EncodeToString(digest[:])
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(strings.ToLower(hash))) != 1 {
		return ErrInvalidPassword
	}
	return nil
}
