package session

import "context"

type idCtxKey struct{}

// WithWebSessionID stamps a verified session ID onto the request
// context so downstream handlers can tell admin sessions apart.
func WithWebSessionID(ctx context.Context, webSessionID string) context.Context {
	return context.WithValue(ctx, idCtxKey{}, webSessionID)
}

func WebSessionIDFromContext(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(idCtxKey{}).(string)
	return val, ok
}
