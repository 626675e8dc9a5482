package handlers

import (
	"encoding/json/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naderabdullah/cardforge/catalog"
	"github.com/naderabdullah/cardforge/layout"
	"github.com/naderabdullah/cardforge/pdfs"
	fpdfcanvas "github.com/naderabdullah/cardforge/pdfs/impls/fpdf"
	"github.com/naderabdullah/cardforge/sheets"
	"github.com/naderabdullah/cardforge/zones"
)

// stubStore serves a fixed design set without touching disk.
type stubStore struct {
	designs map[string]*catalog.Design
	order   []string
}

var _ catalog.Store = (*stubStore)(nil)

func (s *stubStore) Find(id string) (*catalog.Design, error) {
	d, ok := s.designs[id]
	if !ok {
		return nil, catalog.ErrDesignNotFound
	}
	return d, nil
}

func (s *stubStore) All() []*catalog.Design {
	out := make([]*catalog.Design, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.designs[id])
	}
	return out
}

func (s *stubStore) Len() int { return len(s.designs) }

func newStubStore(designs ...*catalog.Design) *stubStore {
	s := &stubStore{designs: map[string]*catalog.Design{}}
	for _, d := range designs {
		s.designs[d.ID] = d
		s.order = append(s.order, d.ID)
	}
	return s
}

func zoneDesign() *catalog.Design {
	return &catalog.Design{
		ID:      "classic-01",
		Theme:   "classic",
		Width:   layout.CardWidth,
		Height:  layout.CardHeight,
		Palette: []string{"#000000"},
		Fonts:   []string{"Helvetica"},
		Front: &zones.CardFace{
			Width:  layout.CardWidth,
			Height: layout.CardHeight,
			Zones: []zones.Zone{
				{ID: "company", Type: zones.ZoneCompanyName, X: 5, Y: 5, Width: 78, Height: 10},
			},
		},
	}
}

func markupDesign() *catalog.Design {
	return &catalog.Design{
		ID:     "fancy-02",
		Theme:  "fancy",
		Markup: `<div class="name">Your Name</div>`,
	}
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	api := &API{
		Catalog: newStubStore(zoneDesign(), markupDesign()),
		Assembler: sheets.NewAssembler(func() (pdfs.Canvas, error) {
			return fpdfcanvas.NewCanvas(pdfs.LetterSize), nil
		}),
	}
	return BuildRouter(api, Wrappers{})
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGenerateEndpoint(t *testing.T) {
	router := testRouter(t)
	rr := postJSON(t, router, "/cards/generate",
		`{"design_id":"classic-01","contact":{"company_name":"Acme","person_name":"Jane Doe"},"card_count":5}`)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "Acme_cards.pdf")
	assert.True(t, strings.HasPrefix(rr.Body.String(), "%PDF"))
}

func TestGenerateEndpointDefaultsToFullSheet(t *testing.T) {
	router := testRouter(t)
	rr := postJSON(t, router, "/cards/generate",
		`{"design_id":"classic-01","contact":{"company_name":"Acme","person_name":"Jane Doe"}}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestGenerateEndpointErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "empty body", body: "", want: http.StatusBadRequest},
		{name: "malformed json", body: "{", want: http.StatusBadRequest},
		{name: "missing design id", body: `{"contact":{"company_name":"A","person_name":"B"}}`, want: http.StatusBadRequest},
		{name: "missing contact", body: `{"design_id":"classic-01"}`, want: http.StatusBadRequest},
		{
			name: "negative card count",
			body: `{"design_id":"classic-01","contact":{"company_name":"A","person_name":"B"},"card_count":-1}`,
			want: http.StatusBadRequest,
		},
		{
			name: "unknown design",
			body: `{"design_id":"ghost","contact":{"company_name":"A","person_name":"B"}}`,
			want: http.StatusNotFound,
		},
		{
			name: "markup design needs capture",
			body: `{"design_id":"fancy-02","contact":{"company_name":"A","person_name":"B"}}`,
			want: http.StatusInternalServerError,
		},
	}
	router := testRouter(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := postJSON(t, router, "/cards/generate", tc.body)
			assert.Equal(t, tc.want, rr.Code, rr.Body.String())
		})
	}
}

func TestCaptureEndpointUnconfigured(t *testing.T) {
	router := testRouter(t)
	rr := postJSON(t, router, "/cards/capture", `{"preview_url":"http://localhost/p/1"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestSubmitEndpointUnconfigured(t *testing.T) {
	router := testRouter(t)
	rr := postJSON(t, router, "/cards/submit",
		`{"design_id":"classic-01","shop_id":"local","contact":{"company_name":"A","person_name":"B"}}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestPreviewEndpointUnconfigured(t *testing.T) {
	router := testRouter(t)
	rr := postJSON(t, router, "/cards/preview",
		`{"design_id":"fancy-02","contact":{"company_name":"A","person_name":"B"}}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestListCatalogEndpoint(t *testing.T) {
	router := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/catalog/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var listing struct {
		Data []struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listing))
	require.Len(t, listing.Data, 2)
	kinds := map[string]string{}
	for _, s := range listing.Data {
		kinds[s.ID] = s.Kind
	}
	assert.Equal(t, "zones", kinds["classic-01"])
	assert.Equal(t, "markup", kinds["fancy-02"])
}

func TestListCatalogDebugData(t *testing.T) {
	api := &API{
		Catalog: newStubStore(zoneDesign(), markupDesign()),
		Debug:   true,
	}
	req := httptest.NewRequest(http.MethodGet, "/catalog/", nil)
	rr := httptest.NewRecorder()
	api.ListCatalog(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var listing struct {
		DebugData struct {
			Designs int `json:"designs"`
			Markup  int `json:"markup"`
		} `json:"debug_data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listing))
	assert.Equal(t, 2, listing.DebugData.Designs)
	assert.Equal(t, 1, listing.DebugData.Markup)
}

func TestValidateCatalogEndpoint(t *testing.T) {
	router := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/catalog/validate", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var results []catalog.ValidationResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &results))
	require.Len(t, results, 2)
}

func TestReloadEndpointStaticCatalog(t *testing.T) {
	router := testRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/catalog/reload", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
