package responses

import (
	"bytes"
	jsonv1 "encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/naderabdullah/cardforge/requests"
)

// EchoHandler mirrors a request back as JSON. Debug deployments mount
// it so operators can see exactly what a client (or the capture
// browser) sends.
type EchoHandler struct {
	MaxMemoryMB int64 // multipart parse budget
}

// ToDo: Use json/v2 once RawMessage passthrough settles

func (h *EchoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resPayload := map[string]any{
		"url":    requests.FullURL(r),
		"method": r.Method,
		"header": r.Header,
	}

	if !requests.HasBody(r) {
		EncodeWriteJSON(w, http.StatusOK, resPayload)
		return
	}

	defer func() {
		if closeErr := r.Body.Close(); closeErr != nil {
			log.Printf("[ERROR][responses] %v", closeErr)
		}
	}()

	rBodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		WriteSimpleErrorJSON(w, http.StatusInternalServerError, "failed to read request body")
		return
	}

	rBodyPayload := map[string]any{
		"raw": string(rBodyBytes),
	}

	// ParseForm and ParseMultipartForm want an unread body, rewind it
	r.Body = io.NopCloser(bytes.NewReader(rBodyBytes))

	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "application/json"):
		if jsonv1.Valid(rBodyBytes) {
			rBodyPayload["json"] = jsonv1.RawMessage(rBodyBytes)
		}
	case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
		if err = r.ParseForm(); err == nil {
			rBodyPayload["form"] = r.PostForm
		} else {
			rBodyPayload["form_error"] = err.Error()
		}
	case strings.HasPrefix(contentType, "multipart/form-data"):
		if err = r.ParseMultipartForm(h.MaxMemoryMB << 20); err == nil {
			rBodyPayload["form"] = r.PostForm
			rBodyPayload["files"] = r.MultipartForm.File
		} else {
			rBodyPayload["form_error"] = err.Error()
		}
	}

	resPayload["body"] = rBodyPayload
	EncodeWriteJSON(w, http.StatusOK, resPayload)
}
