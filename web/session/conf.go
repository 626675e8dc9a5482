package session

import "github.com/naderabdullah/cardforge/sec"

// CookieName uses the `__Host-` prefix: secure, host-locked, path "/".
const CookieName = "__Host-cardforge_wsession"

type Conf struct {
	EncryptionKey string                       `json:"enckey"`
	Cipher        *sec.XChaCha20Poly1305Cipher `json:"-"`

	ExpireSliding int `json:"expire_sliding"` // KV entry TTL, seconds
	ExpireHardcap int `json:"expire_hardcap"` // cookie MaxAge, seconds
}
