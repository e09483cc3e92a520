// Package usecases implements the user service operations of §4.D, one
// file per operation.
package usecases

import (
	"crypto/rand"
	"encoding/base64"
)

// generateSecureToken produces a random 32-byte URL-safe token, grounded on
// the same construction as email-verification/password-reset tokens.
func generateSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
