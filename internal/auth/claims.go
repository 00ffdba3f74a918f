package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// UserIDClaim is the claim the request gate resolves the caller from.
const UserIDClaim = "userId"

// DecodeClaims parses the payload segment of a JWT without verifying
// its signature. The token must have the usual header.payload.signature
// shape; the payload is URL-safe base64 JSON. Any malformation yields
// (nil, false) rather than an error.
func DecodeClaims(token string) (map[string]interface{}, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, false
	}

	payload := parts[1]
	if pad := len(payload) % 4; pad != 0 {
		payload += strings.Repeat("=", 4-pad)
	}

	raw, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		return nil, false
	}

	var claims map[string]interface{}
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, false
	}
	return claims, true
}

// UserIDFromToken extracts the userId claim from the token payload.
func UserIDFromToken(token string) (string, bool) {
	claims, ok := DecodeClaims(token)
	if !ok {
		return "", false
	}
	userID, ok := claims[UserIDClaim].(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
