package requests

import (
	"fmt"
	"net/http"
)

// FullURL reconstructs the request URL as the client sent it, trusting
// X-Forwarded-Proto when TLS terminated upstream.
func FullURL(req *http.Request) string {
	scheme := "https"
	if req.TLS == nil {
		scheme = req.Header.Get("X-Forwarded-Proto")
		if scheme == "" {
			scheme = "http"
		}
	}
	return fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.RequestURI())
}
