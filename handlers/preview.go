package handlers

import (
	"encoding/json/v2"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/naderabdullah/cardforge/catalog"
	"github.com/naderabdullah/cardforge/contacts"
	"github.com/naderabdullah/cardforge/inject"
	"github.com/naderabdullah/cardforge/requests"
	"github.com/naderabdullah/cardforge/responses"
)

const (
	previewKeyPrefix  = "preview:"
	defaultPreviewTTL = 15 * time.Minute

	// previewTemplateKey - optional wrapper template under templates/html.
	// Without it the injected markup is served bare.
	previewTemplateKey = "cards/preview"
)

type PreviewRequest struct {
	DesignID string           `json:"design_id"`
	Contact  *contacts.Record `json:"contact"`
}

type PreviewResponse struct {
	PreviewID string `json:"preview_id"`
	URL       string `json:"url"`
}

type previewPage struct {
	Title string
	Body  template.HTML
}

// CreatePreview injects a contact into a markup design and parks the
// result in the KV store, returning a short-lived URL the capture
// backend (or a human) can open.
func (a *API) CreatePreview(w http.ResponseWriter, r *http.Request) {
	if a.KV == nil {
		responses.WriteSimpleErrorJSON(w, http.StatusServiceUnavailable, "preview storage is not configured")
		return
	}
	req, ok := a.decodePreviewRequest(w, r)
	if !ok {
		return
	}

	design, err := a.Catalog.Find(req.DesignID)
	if err != nil {
		if errors.Is(err, catalog.ErrDesignNotFound) {
			responses.WriteSimpleErrorJSON(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("[ERROR][preview] catalog lookup: %v", err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "catalog lookup failed")
		return
	}
	if !design.HasMarkup() {
		responses.WriteSimpleErrorJSON(w, http.StatusUnprocessableEntity, "design has no markup to preview")
		return
	}

	injected := inject.InjectContactInfo(design.Markup, req.Contact)

	previewID := uuid.NewString()
	ttl := a.PreviewTTL
	if ttl <= 0 {
		ttl = defaultPreviewTTL
	}
	if err = a.KV.Set(r.Context(), previewKeyPrefix+previewID, injected, ttl); err != nil {
		log.Printf("[ERROR][preview] storing preview: %v", err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "failed to store preview")
		return
	}

	responses.EncodeWriteJSON(w, http.StatusCreated, &PreviewResponse{
		PreviewID: previewID,
		URL:       a.PublicHost + "/cards/preview/" + previewID,
	})
}

// ServePreview renders a stored preview as an HTML page.
func (a *API) ServePreview(w http.ResponseWriter, r *http.Request) {
	if a.KV == nil {
		responses.WriteSimpleErrorJSON(w, http.StatusServiceUnavailable, "preview storage is not configured")
		return
	}
	previewID := r.PathValue("id")
	if err := uuid.Validate(previewID); err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "malformed preview id")
		return
	}
	markup, found, err := a.KV.Get(r.Context(), previewKeyPrefix+previewID)
	if err != nil {
		log.Printf("[ERROR][preview] reading preview: %v", err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "failed to read preview")
		return
	}
	if !found {
		responses.WriteSimpleErrorJSON(w, http.StatusNotFound, "preview not found or expired")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if a.Templates != nil {
		if t, ok := a.Templates.Base[previewTemplateKey]; ok {
			page := &previewPage{
				Title: "Card Preview",
				Body:  template.HTML(markup),
			}
			if err = t.Execute(w, page); err != nil {
				log.Printf("[ERROR][preview] rendering template: %v", err)
			}
			return
		}
	}
	if _, err = w.Write([]byte(markup)); err != nil {
		log.Printf("[WARN][preview] writing preview body: %v", err)
	}
}

func (a *API) decodePreviewRequest(w http.ResponseWriter, r *http.Request) (*PreviewRequest, bool) {
	if !requests.HasBody(r) {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "request body required")
		return nil, false
	}
	var req PreviewRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "malformed request body")
		return nil, false
	}
	if req.DesignID == "" {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "design_id required")
		return nil, false
	}
	if err := req.Contact.Validate(); err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &req, true
}
