package responses

// Message is the envelope for non-document responses.
type Message struct {
	Type    string `json:"type"` // "ok", "error"
	Message string `json:"message"`
	Code    int    `json:"code,omitzero"` // application-level code
}
