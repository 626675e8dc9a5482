package handlers

import (
	"net/http"

	"github.com/naderabdullah/cardforge/responses"
	"github.com/naderabdullah/cardforge/routing"
)

// Wrappers bundles the middlewares the router hangs on each group.
// Nil members are skipped, so a deployment without auth or sessions
// still routes.
type Wrappers struct {
	Throttle *ThrottleWrapper
	Auth     *BearerAuthWrapper
	Session  *SessionWrapper
}

// BuildRouter wires the HTTP surface. Generation endpoints sit behind
// throttle + bearer auth, admin endpoints behind a login session.
func BuildRouter(api *API, wr Wrappers) http.Handler {
	router := &routing.BaseRouter{ServeMux: http.NewServeMux()}

	gen := []routing.HandlerWrapper{routing.HandlerWrapperFunc(routing.RecoverWrapper)}
	if wr.Throttle != nil {
		gen = append(gen, wr.Throttle)
	}
	if wr.Auth != nil {
		gen = append(gen, wr.Auth)
	}
	router.Group("/cards", func(g *routing.RouteGroup) {
		g.HandleFunc("POST /generate", api.Generate)
		g.HandleFunc("POST /capture", api.Capture)
		g.HandleFunc("POST /preview", api.CreatePreview)
		g.HandleFunc("POST /submit", api.Submit)
	}, gen...)

	pub := []routing.HandlerWrapper{routing.HandlerWrapperFunc(routing.RecoverWrapper)}
	if wr.Throttle != nil {
		pub = append(pub, wr.Throttle)
	}
	// The capture browser fetches previews without credentials, so the
	// GET side stays outside the auth wrapper.
	router.Group("/cards/preview", func(g *routing.RouteGroup) {
		g.HandleFunc("GET /{id}", api.ServePreview)
	}, pub...)
	var admin []routing.HandlerWrapper
	if wr.Session != nil {
		admin = append(admin, wr.Session)
	}
	router.Group("/catalog", func(g *routing.RouteGroup) {
		g.HandleFunc("GET /{$}", api.ListCatalog)
		g.HandleFunc("GET /validate", api.ValidateCatalog)
		g.HandleFunc("POST /reload", api.Reload, admin...)
	}, pub...)

	if api.JWKSProxy != nil {
		router.HandleFunc("GET /.well-known/jwks.json", api.JWKSProxy, pub...)
	}
	if api.Debug {
		router.Handle("/debug/echo", &responses.EchoHandler{MaxMemoryMB: 8}, pub...)
	}

	return router
}
