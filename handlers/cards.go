package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/naderabdullah/cardforge/capture"
	"github.com/naderabdullah/cardforge/catalog"
	"github.com/naderabdullah/cardforge/contacts"
	"github.com/naderabdullah/cardforge/db/kvdb"
	"github.com/naderabdullah/cardforge/delivery"
	"github.com/naderabdullah/cardforge/imgcache"
	"github.com/naderabdullah/cardforge/printshops"
	"github.com/naderabdullah/cardforge/locks/keyonlylocks"
	"github.com/naderabdullah/cardforge/requests"
	"github.com/naderabdullah/cardforge/responses"
	"github.com/naderabdullah/cardforge/sheets"
	"github.com/naderabdullah/cardforge/tpl"
)

// API holds the card generation endpoints and their dependencies.
type API struct {
	Catalog   catalog.Store
	Assembler *sheets.Assembler
	Capturer  *capture.Capturer

	// ReloadCatalog re-reads the backing store. nil = static catalog.
	ReloadCatalog func() error

	// Logos resolves logo bytes by ID on cache miss. nil = requests
	// must embed logo data.
	Logos *imgcache.Fetcher

	// Preview storage and presentation. KV nil = previews disabled.
	KV         kvdb.Client
	Templates  *tpl.HTMLTemplateStore
	PublicHost string        // prefix for generated preview URLs
	PreviewTTL time.Duration // 0 = defaultPreviewTTL

	// Debug attaches diagnostic payloads to listing responses.
	Debug bool

	// JWKSProxy passes the upstream key set through, nil = no upstream.
	JWKSProxy http.HandlerFunc

	// Print shop delivery. Both must be set for Submit to work.
	Mailer *delivery.Mailer
	Shops  func(id string) (printshops.Conf, bool)

	jobLocks sync.Map // in-flight job dedup
}

type GenerateRequest struct {
	DesignID  string           `json:"design_id"`
	Contact   *contacts.Record `json:"contact"`
	CardCount int              `json:"card_count,omitzero"` // 0 = one full sheet
}

type CaptureRequest struct {
	PreviewURL string `json:"preview_url"`
	Selector   string `json:"selector,omitzero"`
	CardCount  int    `json:"card_count,omitzero"`
}

const defaultCardSelector = ".card-preview"

// Generate renders a contact onto a design and streams the sheet PDF.
func (a *API) Generate(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	design, err := a.Catalog.Find(req.DesignID)
	if err != nil {
		if errors.Is(err, catalog.ErrDesignNotFound) {
			responses.WriteSimpleErrorJSON(w, http.StatusNotFound, err.Error())
			return
		}
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "catalog lookup failed")
		return
	}

	// An identical request already in flight renders once, the
	// duplicate is turned away.
	lockKey := generateJobKey(req)
	held, ok := keyonlylocks.AcquireLocks(&a.jobLocks, []string{lockKey})
	if !ok {
		responses.WriteSimpleErrorJSON(w, http.StatusConflict, "identical job already in progress")
		return
	}
	defer keyonlylocks.ReleaseLocks(&a.jobLocks, held)

	a.resolveLogo(r.Context(), req.Contact)

	cardCount := req.CardCount
	var (
		out   []byte
		stats *sheets.Stats
	)
	if cardCount == 0 {
		out, stats, err = a.Assembler.GenerateSingleSheet(design, req.Contact, 10)
	} else {
		out, stats, err = a.Assembler.GenerateDocument(design, req.Contact, cardCount)
	}
	if err != nil {
		log.Printf("[ERROR][handlers] generate design=%q: %v", req.DesignID, err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "card generation failed")
		return
	}
	log.Printf("[INFO][handlers] job %s done: %d/%d cards", stats.JobID, stats.Rendered, stats.Requested)

	responses.WritePDFBytesWithFilename(w, cardFilename(req.Contact), out)
}

// Capture shoots a browser preview and stamps it across the sheet.
func (a *API) Capture(w http.ResponseWriter, r *http.Request) {
	if a.Capturer == nil {
		responses.WriteSimpleErrorJSON(w, http.StatusServiceUnavailable, "capture backend not configured")
		return
	}
	if !requests.HasBody(r) {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "request body required")
		return
	}
	var req CaptureRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.PreviewURL == "" {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "preview_url required")
		return
	}
	if req.Selector == "" {
		req.Selector = defaultCardSelector
	}

	out, stats, err := a.Capturer.CaptureAndPlace(r.Context(), a.Assembler, req.PreviewURL, req.Selector, req.CardCount)
	if err != nil {
		log.Printf("[ERROR][handlers] capture %q: %v", req.PreviewURL, err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "capture failed")
		return
	}
	log.Printf("[INFO][handlers] capture job %s done: %d cards", stats.JobID, stats.Rendered)

	responses.WritePDFBytesWithFilename(w, "captured_cards.pdf", out)
}

func (a *API) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (*GenerateRequest, bool) {
	if !requests.HasBody(r) {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "request body required")
		return nil, false
	}
	var req GenerateRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "malformed request body")
		return nil, false
	}
	if req.DesignID == "" {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "design_id required")
		return nil, false
	}
	if req.CardCount < 0 {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "card_count must not be negative")
		return nil, false
	}
	if err := req.Contact.Validate(); err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &req, true
}

// resolveLogo fills in logo bytes from the logo store when the request
// names a logo by ID only. Failure leaves Data empty, the renderer's
// placeholder handles that.
func (a *API) resolveLogo(ctx context.Context, rec *contacts.Record) {
	if a.Logos == nil || rec.Logo == nil {
		return
	}
	if rec.Logo.ID == "" || len(rec.Logo.Data) > 0 {
		return
	}
	data, err := a.Logos.Fetch(ctx, rec.Logo.ID)
	if err != nil {
		log.Printf("[WARN][handlers] logo %q unavailable: %v", rec.Logo.ID, err)
		return
	}
	rec.Logo.Data = data
}

func generateJobKey(req *GenerateRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|", req.DesignID, req.CardCount)
	if data, err := json.Marshal(req.Contact); err == nil {
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func cardFilename(rec *contacts.Record) string {
	return responses.SanitizeFilename(rec.CompanyName, "cards") + "_cards.pdf"
}
