package routing

import (
	"log"
	"net/http"
	"strings"
)

// RouteGroup prefixes every registered pattern and layers the group's
// wrappers around each handler. Group wrappers run outside the
// per-route ones: group pre-actions first, group post-actions last.
type RouteGroup struct {
	Router
	Prefix          string
	HandlerWrappers []HandlerWrapper
}

var _ Router = (*RouteGroup)(nil)

// Handle accepts either "<subpath>" or "<METHOD> <subpath>" and joins
// the subpath onto the group prefix.
func (g *RouteGroup) Handle(subpattern string, handler http.Handler, handlerWrappers ...HandlerWrapper) {
	var fullPattern string
	parts := strings.SplitN(subpattern, " ", 2)
	if len(parts) == 2 {
		fullPattern = parts[0] + " " + g.Prefix + parts[1]
	} else {
		fullPattern = g.Prefix + subpattern
	}

	if strings.Contains(fullPattern, "//") {
		log.Fatalf("[ERROR][routing] bad route pattern %q", fullPattern)
	}

	wrapped := handler
	for i := len(handlerWrappers) - 1; i >= 0; i-- {
		wrapped = handlerWrappers[i].Wrap(wrapped)
	}
	for i := len(g.HandlerWrappers) - 1; i >= 0; i-- {
		wrapped = g.HandlerWrappers[i].Wrap(wrapped)
	}
	g.Router.Handle(fullPattern, wrapped)
}

func (g *RouteGroup) HandleFunc(subpattern string, handleFunc func(http.ResponseWriter, *http.Request), handlerWrappers ...HandlerWrapper) {
	g.Handle(subpattern, http.HandlerFunc(handleFunc), handlerWrappers...)
}

// Group makes a subgroup: prefixes concatenate, wrapper lists append.
func (g *RouteGroup) Group(subPrefix string, batch func(*RouteGroup), handlerWrappers ...HandlerWrapper) *RouteGroup {
	subg := &RouteGroup{
		Router:          g.Router,
		Prefix:          g.Prefix + subPrefix,
		HandlerWrappers: append(g.HandlerWrappers, handlerWrappers...),
	}
	batch(subg)
	return subg
}
