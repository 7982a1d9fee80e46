package token

import (
	"crypto/rand"
	"encoding/base64"
)

// Generate returns a crypto-secure random string of length n, drawn from
// the base64 URL alphabet. Used for match invite codes.
func Generate(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	// base64 expands by a third, so there is always enough
	return base64.RawURLEncoding.EncodeToString(b)[0:n], nil
}
