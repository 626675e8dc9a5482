package sec

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json/v2"
	"encoding/pem"
	"errors"
	"fmt"
	"log"
	"math/big"
	"os"
	"path/filepath"
	"strings"
)

// JWK is a single RSA signing key in JSON Web Key form.
type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	N   string `json:"n"` // modulus
	E   string `json:"e"` // exponent
}

func (j *JWK) ToPublicKey() (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(j.N)
	if err != nil {
		return nil, fmt.Errorf("decoding modulus: %w", err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(j.E)
	if err != nil {
		return nil, fmt.Errorf("decoding exponent: %w", err)
	}
	e := 0
	for _, b := range eb {
		e = e<<8 + int(b)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nb),
		E: e,
	}, nil
}

func NewJWKFromPublicKey(kid string, pub *rsa.PublicKey) JWK {
	return JWK{
		Kty: "RSA",
		Use: "sig",
		Kid: kid,
		Alg: "RS256",
		N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}
}

// JWKS is the key set bearer auth verifies against.
type JWKS struct {
	Keys []JWK `json:"keys"`
}

func (s *JWKS) CreateJSONFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("[ERROR][sec] %v", closeErr)
		}
	}()
	return json.MarshalWrite(file, s)
}

func (s *JWKS) GetJWKByKID(kid string) (*JWK, error) {
	for _, key := range s.Keys {
		if key.Kid == kid {
			return &key, nil // copy, callers can't mutate the set
		}
	}
	return nil, errors.New("key not found")
}

// LoadPublicPEMKeysAsJWKS builds a key set from a directory of
// <kid>_public.pem files. Non-RSA keys are skipped.
func LoadPublicPEMKeysAsJWKS(dirPath string) (*JWKS, error) {
	dirEntries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("reading key directory: %w", err)
	}
	var keys []JWK
	for _, entry := range dirEntries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, "_public.pem") {
			continue
		}
		pemBytes, err := os.ReadFile(filepath.Join(dirPath, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		pemBlock, rest := pem.Decode(pemBytes)
		if pemBlock == nil || pemBlock.Type != "PUBLIC KEY" {
			continue
		}
		if len(rest) > 0 {
			// one key per kid, trailing blocks mean a concatenated file
			return nil, fmt.Errorf("extra data after PEM block in %s", name)
		}
		pub, err := x509.ParsePKIXPublicKey(pemBlock.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		rsaKey, ok := pub.(*rsa.PublicKey)
		if !ok {
			continue
		}
		kid := strings.TrimSuffix(name, "_public.pem")
		keys = append(keys, NewJWKFromPublicKey(kid, rsaKey))
	}
	return &JWKS{Keys: keys}, nil
}
