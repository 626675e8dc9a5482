package routing

import "net/http"

// HandlerWrapperFunc adapts a plain middleware function to the
// HandlerWrapper interface.
type HandlerWrapperFunc func(http.Handler) http.Handler

func (f HandlerWrapperFunc) Wrap(inner http.Handler) http.Handler {
	return f(inner)
}
