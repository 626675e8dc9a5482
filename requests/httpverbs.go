package requests

import "net/http"

// HasBody reports whether the request method carries a body worth
// decoding.
func HasBody(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}
