package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ParseRSASignedToken verifies a compact token against the public key.
// Only RSA signing methods are accepted, so a token cannot downgrade
// to "none" or HMAC-with-public-key.
func ParseRSASignedToken(signedToken string, pubKey *rsa.PublicKey) (*jwt.Token, error) {
	return jwt.Parse(signedToken, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return pubKey, nil
	})
}

func GetClaimsFromParsedJWTToken(parsedToken *jwt.Token) (jwt.MapClaims, error) {
	if !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}
	claimMap, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims shape")
	}
	return claimMap, nil
}
