package routing

import "net/http"

// HandlerWrapper is middleware: Wrap returns a handler that runs logic
// around the wrapped handler's ServeHTTP. Wrappers compose by nesting,
// so a wrapper's result can itself be wrapped again.
type HandlerWrapper interface {
	Wrap(http.Handler) http.Handler
}
