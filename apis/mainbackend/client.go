// Package mainbackend talks to the upstream account service this app
// runs behind. The card service only consumes its JWKS endpoint, for
// verifying bearer tokens the upstream issued.
package mainbackend

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/naderabdullah/cardforge/responses"
	"github.com/naderabdullah/cardforge/sec"
)

type Client struct {
	*http.Client
	Conf *Conf
}

func (c *Client) RequestJWKS(ctx context.Context) (*http.Response, error) {
	upstrURL := c.Conf.Host + "/.well-known/jwks.json"
	upstrReq, err := http.NewRequestWithContext(ctx, http.MethodGet, upstrURL, nil)
	if err != nil {
		return nil, err
	}
	upstrReq.Header.Set("Client-Id", c.Conf.ClientID)
	upstrReq.Header.Set("Accept", "application/jwk-set+json")
	return c.Do(upstrReq)
}

// GetJWKS fetches and decodes the upstream's published key set.
func (c *Client) GetJWKS(ctx context.Context) (*sec.JWKS, error) {
	upstrRes, err := c.RequestJWKS(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := upstrRes.Body.Close(); closeErr != nil {
			log.Printf("[WARN][mainbackend] %v", closeErr)
		}
	}()
	if upstrRes.StatusCode == http.StatusNotFound {
		return nil, responses.HTTPErrorNotFound
	}
	if upstrRes.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwks fetch: HTTP %d", upstrRes.StatusCode)
	}
	var jwks sec.JWKS
	if err = json.UnmarshalRead(upstrRes.Body, &jwks); err != nil {
		return nil, err
	}
	return &jwks, nil
}

// JWKSFileResponse proxies the upstream key set, so clients of this
// service can verify tokens without knowing the upstream host.
func (c *Client) JWKSFileResponse(w http.ResponseWriter, r *http.Request) {
	upstrRes, err := c.RequestJWKS(r.Context())
	if err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadGateway, err.Error())
		return
	}
	defer func() {
		if closeErr := upstrRes.Body.Close(); closeErr != nil {
			log.Printf("[WARN][mainbackend] %v", closeErr)
		}
	}()
	w.Header().Set("Content-Type", "application/jwk-set+json")
	w.WriteHeader(upstrRes.StatusCode)
	if _, err = io.Copy(w, upstrRes.Body); err != nil {
		log.Printf("[ERROR][mainbackend] streaming jwks: %v", err)
	}
}
