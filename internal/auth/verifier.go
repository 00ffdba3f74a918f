package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier decides whether a presented token is trustworthy before
// claims are extracted. Swapping the implementation does not change
// the gate's external contract.
type Verifier interface {
	Verify(token string) error
}

// Unverified accepts every token as-is. This matches the upstream
// token-issuing service's assumption that the gateway strips forged
// credentials; claims are trusted without a signature check.
type Unverified struct{}

// Verify always reports success.
func (Unverified) Verify(string) error { return nil }

// HMACVerifier validates an HS256 signature and the registered claims
// (exp, nbf) before the gate extracts the identity.
type HMACVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewHMACVerifier builds a strict verifier around a shared secret.
func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})),
	}
}

// Verify parses and validates the token signature.
func (v *HMACVerifier) Verify(token string) error {
	parsed, err := v.parser.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return fmt.Errorf("verify token: %w", err)
	}
	if !parsed.Valid {
		return ErrUnauthorized
	}
	return nil
}
