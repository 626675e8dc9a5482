package handlers

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/naderabdullah/cardforge/catalog"
	"github.com/naderabdullah/cardforge/contacts"
	"github.com/naderabdullah/cardforge/printshops"
	"github.com/naderabdullah/cardforge/requests"
	"github.com/naderabdullah/cardforge/responses"
)

type SubmitRequest struct {
	DesignID  string           `json:"design_id"`
	Contact   *contacts.Record `json:"contact"`
	CardCount int              `json:"card_count,omitzero"` // 0 = one full sheet
	ShopID    string           `json:"shop_id"`
}

// Submit renders a document and mails it to a registered print shop
// instead of streaming it back.
func (a *API) Submit(w http.ResponseWriter, r *http.Request) {
	if a.Mailer == nil || a.Shops == nil {
		responses.WriteSimpleErrorJSON(w, http.StatusServiceUnavailable, "print shop delivery not configured")
		return
	}
	req, ok := a.decodeSubmitRequest(w, r)
	if !ok {
		return
	}

	shop, found := a.Shops(req.ShopID)
	if !found {
		responses.WriteSimpleErrorJSON(w, http.StatusNotFound, fmt.Sprintf("unknown print shop %q", req.ShopID))
		return
	}
	if shop.MaxCardsPerJob > 0 && req.CardCount > shop.MaxCardsPerJob {
		responses.WriteSimpleErrorJSON(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("%s accepts at most %d cards per job", shop.Name, shop.MaxCardsPerJob))
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

	ctx := printshops.WithShopConf(r.Context(), shop)
	a.resolveLogo(ctx, req.Contact)

	var out []byte
	if req.CardCount == 0 {
		out, _, err = a.Assembler.GenerateSingleSheet(design, req.Contact, 10)
	} else {
		out, _, err = a.Assembler.GenerateDocument(design, req.Contact, req.CardCount)
	}
	if err != nil {
		log.Printf("[ERROR][handlers] submit design=%q shop=%q: %v", req.DesignID, req.ShopID, err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "card generation failed")
		return
	}

	if err = a.deliver(ctx, cardFilename(req.Contact), out); err != nil {
		log.Printf("[ERROR][handlers] delivering to shop %q: %v", req.ShopID, err)
		responses.WriteSimpleErrorJSON(w, http.StatusBadGateway, "delivery failed")
		return
	}

	responses.EncodeWriteJSON(w, http.StatusAccepted, responses.Message{
		Type:    "ok",
		Message: fmt.Sprintf("sent to %s", shop.Name),
	})
}

func (a *API) deliver(ctx context.Context, filename string, pdf []byte) error {
	shop, ok := printshops.ShopConfFromContext(ctx)
	if !ok {
		return errors.New("no shop selected")
	}
	subject := "Print job: " + filename
	return a.Mailer.SendPDF(shop.Email, subject, filename, pdf)
}

func (a *API) decodeSubmitRequest(w http.ResponseWriter, r *http.Request) (*SubmitRequest, bool) {
	if !requests.HasBody(r) {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "request body required")
		return nil, false
	}
	var req SubmitRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "malformed request body")
		return nil, false
	}
	if req.DesignID == "" {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "design_id required")
		return nil, false
	}
	if req.ShopID == "" {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "shop_id required")
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
