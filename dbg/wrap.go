// Package dbg wraps API payloads with an optional diagnostics side
// channel, kept out of the response entirely when unset.
package dbg

type Packed[T any] struct {
	Data      T   `json:"data"`
	DebugData any `json:"debug_data,omitempty"`
}

func Pack[T any](data T) *Packed[T] {
	return &Packed[T]{Data: data}
}
