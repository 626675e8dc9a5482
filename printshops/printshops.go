package printshops

import "context"

// Conf is one print-shop profile from .printshops.json. The map key
// becomes the ID.
type Conf struct {
	ID    string `json:"-"` // filled with a key from .printshops.json
	Name  string `json:"name"`
	Email string `json:"email"`
	// MaxCardsPerJob caps order size for shops with smaller presses.
	// 0 = unlimited
	MaxCardsPerJob int    `json:"max_cards_per_job"`
	Notes          string `json:"notes"`
}

// Registry maps shop ID to its Conf
type Registry map[string]Conf

// Ctx Access Helpers

type ctxKey struct{}

func WithShopConf(ctx context.Context, conf Conf) context.Context {
	return context.WithValue(ctx, ctxKey{}, conf)
}

func ShopConfFromContext(ctx context.Context) (Conf, bool) {
	ctxVal := ctx.Value(ctxKey{})
	val, ok := ctxVal.(Conf)
	return val, ok
}
