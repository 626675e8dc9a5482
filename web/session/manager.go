package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/naderabdullah/cardforge/db/kvdb"
	"github.com/naderabdullah/cardforge/sec"
)

// Manager backs admin login sessions with the KV store. There is no
// login page here: sessions are minted out of band (see the control
// socket's grant-session command) and verified per request from the
// encrypted cookie.
type Manager struct {
	Conf              Conf
	Cipher            *sec.XChaCha20Poly1305Cipher
	AppName           string // session key namespace
	BackendKVDBClient kvdb.Client
	SessionLocks      *sync.Map // per-session mutexes
}

func (m *Manager) WebSessionIDToKVDBKey(sessionID string) string {
	return m.AppName + "_wsession:" + sessionID
}

func (m *Manager) FindWebSessionInKVDB(ctx context.Context, sessionID string) (bool, error) {
	return m.BackendKVDBClient.Exists(ctx, m.WebSessionIDToKVDBKey(sessionID))
}

// CheckWebSessionFromCookie verifies the session cookie and returns
// the session ID when it refers to a live session.
func (m *Manager) CheckWebSessionFromCookie(ctx context.Context, r *http.Request) (string, bool) {
	webSessionCookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	webSessionID, err := m.Cipher.DecodeDecrypt(webSessionCookie.Value)
	if err != nil {
		return "", false
	}
	found, err := m.FindWebSessionInKVDB(ctx, string(webSessionID))
	if err != nil || !found {
		return "", false
	}
	return string(webSessionID), true
}

// CreateWebSession mints a session, records it in the KV store and
// returns the ID together with the encrypted cookie value.
func (m *Manager) CreateWebSession(ctx context.Context) (id string, cookieValue string, err error) {
	id, err = GenerateWebSessionID()
	if err != nil {
		return "", "", err
	}
	ttl := time.Duration(m.Conf.ExpireSliding) * time.Second
	if err = m.BackendKVDBClient.Set(ctx, m.WebSessionIDToKVDBKey(id), "1", ttl); err != nil {
		return "", "", fmt.Errorf("storing web session: %w", err)
	}
	cookieValue, err = m.Cipher.EncryptEncode([]byte(id))
	if err != nil {
		return "", "", fmt.Errorf("encrypting web session id: %w", err)
	}
	return id, cookieValue, nil
}

func (m *Manager) RevokeWebSession(ctx context.Context, sessionID string) error {
	_, err := m.BackendKVDBClient.Delete(ctx, m.WebSessionIDToKVDBKey(sessionID))
	return err
}

func (m *Manager) SetWebSessionCookie(w http.ResponseWriter, webSessionID string) error {
	encWebSessionID, err := m.Cipher.EncryptEncode([]byte(webSessionID))
	if err != nil {
		return fmt.Errorf("encrypting web session id: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encWebSessionID,
		Path:     "/", // __Host- requires "/" and no Domain
		HttpOnly: true,
		Secure:   true,
		MaxAge:   m.Conf.ExpireHardcap,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Manager) RemoveWebSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
