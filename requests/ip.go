package requests

import (
	"net"
	"net/http"
	"strings"
)

// GetClientIP returns the originating client address, looking through
// the reverse proxy headers first. Throttling keys on this.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// first entry = original client
		return strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}
	if xRealIP := r.Header.Get("X-Real-IP"); xRealIP != "" {
		return strings.TrimSpace(xRealIP)
	}
	hostIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return hostIP
}
