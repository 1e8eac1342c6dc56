// Package credentials isolates how passwords are stored and compared so the
// scheme can be swapped without touching the services that authenticate.
//
// The default scheme is plaintext with case-sensitive equality. That is a
// known weak point carried over for compatibility with existing account
// rows; set AUTH_SCHEME=bcrypt to hash new passwords and verify with bcrypt.
package credentials

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 14

// Verifier hashes passwords for storage and checks supplied passwords
// against stored ones.
type Verifier interface {
	Hash(password string) (string, error)
	Verify(stored, supplied string) bool
}

// PlaintextVerifier stores passwords verbatim and compares them with exact,
// case-sensitive equality.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Hash(password string) (string, error) {
	return password, nil
}

func (PlaintextVerifier) Verify(stored, supplied string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

type BcryptVerifier struct{}

func (BcryptVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hash), err
}

func (BcryptVerifier) Verify(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// ForScheme returns the verifier for an AUTH_SCHEME value. An empty scheme
// selects plaintext.
func ForScheme(scheme string) (Verifier, error) {
	switch scheme {
	case "", "plaintext":
		return PlaintextVerifier{}, nil
	case "bcrypt":
		return BcryptVerifier{}, nil
	default:
		return nil, fmt.Errorf("unknown auth scheme: %q", scheme)
	}
}
