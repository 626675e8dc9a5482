package responses

import (
	"encoding/json/v2"
	"log"
	"net/http"
)

// EncodeWriteJSON streams the payload as JSON with the given status.
func EncodeWriteJSON(w http.ResponseWriter, httpStatusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode) // headers frozen from here
	if err := json.MarshalWrite(w, payload); err != nil {
		log.Printf("[ERROR][responses] writing JSON: %v", err)
	}
}

// WriteSimpleErrorJSON wraps a bare message in the error Message shape.
func WriteSimpleErrorJSON(w http.ResponseWriter, httpStatusCode int, msg string) {
	EncodeWriteJSON(w, httpStatusCode, Message{Type: "error", Message: msg})
}
