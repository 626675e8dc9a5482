package routing

import "net/http"

// BaseRouter is a ServeMux that applies HandlerWrappers at
// registration time.
type BaseRouter struct {
	*http.ServeMux
}

var _ Router = (*BaseRouter)(nil)

func (r *BaseRouter) Handle(pattern string, handler http.Handler, handlerWrappers ...HandlerWrapper) {
	wrapped := handler
	for i := len(handlerWrappers) - 1; i >= 0; i-- {
		wrapped = handlerWrappers[i].Wrap(wrapped)
	}
	r.ServeMux.Handle(pattern, wrapped)
}

func (r *BaseRouter) HandleFunc(pattern string, handleFunc func(http.ResponseWriter, *http.Request), handlerWrappers ...HandlerWrapper) {
	r.Handle(pattern, http.HandlerFunc(handleFunc), handlerWrappers...)
}

// Group registers routes under a shared prefix and wrapper set.
func (r *BaseRouter) Group(prefix string, batch func(*RouteGroup), handlerWrappers ...HandlerWrapper) *RouteGroup {
	g := &RouteGroup{
		Router:          r,
		Prefix:          prefix,
		HandlerWrappers: handlerWrappers,
	}
	batch(g)
	return g
}
