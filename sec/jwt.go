package sec

import (
	"encoding/base64"
	"errors"
	"strings"
)

// SplitSignedJwtTokenRawParts splits a compact JWT into its three
// still-encoded segments: header, claims, signature.
func SplitSignedJwtTokenRawParts(signedToken string) (string, string, string, error) {
	parts := strings.Split(signedToken, ".")
	if len(parts) != 3 {
		return "", "", "", errors.New("invalid token format")
	}
	return parts[0], parts[1], parts[2], nil
}

func DecodeJwtHeader(headerEncoded string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(headerEncoded)
}
