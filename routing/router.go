package routing

import "net/http"

// Router is what BaseRouter and RouteGroup have in common, letting a
// group register routes through whichever it was built on.
type Router interface {
	ServeHTTP(w http.ResponseWriter, r *http.Request)
	Handle(pattern string, handler http.Handler, handlerWrappers ...HandlerWrapper)
	HandleFunc(pattern string, handleFunc func(http.ResponseWriter, *http.Request), handlerWrappers ...HandlerWrapper)
}
