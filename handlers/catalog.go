package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/naderabdullah/cardforge/catalog"
	"github.com/naderabdullah/cardforge/dbg"
	"github.com/naderabdullah/cardforge/responses"
	"github.com/naderabdullah/cardforge/web/session"
)

// designSummary is the catalog listing shape, metadata only.
type designSummary struct {
	ID       string   `json:"id"`
	Theme    string   `json:"theme,omitzero"`
	Width    float64  `json:"width,omitzero"`
	Height   float64  `json:"height,omitzero"`
	Features []string `json:"features,omitzero"`
	Kind     string   `json:"kind"` // "markup" or "zones"
}

// ListCatalog returns the available designs.
func (a *API) ListCatalog(w http.ResponseWriter, r *http.Request) {
	designs := a.Catalog.All()
	summaries := make([]designSummary, 0, len(designs))
	for _, d := range designs {
		kind := "zones"
		if d.HasMarkup() {
			kind = "markup"
		}
		summaries = append(summaries, designSummary{
			ID:       d.ID,
			Theme:    d.Theme,
			Width:    d.Width,
			Height:   d.Height,
			Features: d.Features,
			Kind:     kind,
		})
	}
	packed := dbg.Pack(summaries)
	if a.Debug {
		markup := 0
		for _, s := range summaries {
			if s.Kind == "markup" {
				markup++
			}
		}
		packed.DebugData = map[string]any{
			"store":   fmt.Sprintf("%T", a.Catalog),
			"designs": len(summaries),
			"markup":  markup,
		}
	}
	responses.EncodeWriteJSON(w, http.StatusOK, packed)
}

// ValidateCatalog reports schema problems per design.
func (a *API) ValidateCatalog(w http.ResponseWriter, r *http.Request) {
	responses.EncodeWriteJSON(w, http.StatusOK, catalog.ValidateCatalog(a.Catalog))
}

// Reload re-reads the catalog's backing store. Session-guarded at the
// routing layer.
func (a *API) Reload(w http.ResponseWriter, r *http.Request) {
	if a.ReloadCatalog == nil {
		responses.WriteSimpleErrorJSON(w, http.StatusServiceUnavailable, "catalog is static")
		return
	}
	if sid, ok := session.WebSessionIDFromContext(r.Context()); ok {
		log.Printf("[INFO][handlers] catalog reload requested by session %s", sid)
	}
	if err := a.ReloadCatalog(); err != nil {
		log.Printf("[ERROR][handlers] catalog reload: %v", err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "reload failed")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, responses.Message{
		Type:    "ok",
		Message: "catalog reloaded",
	})
}
