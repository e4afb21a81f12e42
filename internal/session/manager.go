package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salaryscope/internal/identity"
	"salaryscope/internal/shared/telemetry"
)

// CookieName is the browser cookie carrying the opaque session token.
const CookieName = "ss_session"

// Manager is the cookie-facing API over a session Store. It implements
// the ANONYMOUS/AUTHENTICATED state machine: SignIn always lands in
// AUTHENTICATED (overwriting any prior slot), SignOut returns to
// ANONYMOUS, and Current never errors; any failure reads as ANONYMOUS.
type Manager struct {
	Store        Store
	TTL          time.Duration
	CookieSecure bool
}

func NewManager(store Store, ttl time.Duration, secure bool) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{Store: store, TTL: ttl, CookieSecure: secure}
}

// SignIn persists the identity into a fresh slot and sets the cookie.
// Any prior slot for this browser is overwritten.
func (m *Manager) SignIn(c *gin.Context, ident identity.Identity) (Session, error) {
	now := time.Now().UTC()
	sess := Session{
		Token:     uuid.NewString(),
		Identity:  ident,
		CreatedAt: now,
		ExpiresAt: now.Add(m.TTL),
	}
	if err := m.Store.Put(c.Request.Context(), sess); err != nil {
		return Session{}, err
	}
	if old, err := c.Cookie(CookieName); err == nil && old != "" && old != sess.Token {
		// Drop the slot the replaced cookie pointed at.
		_ = m.Store.Delete(c.Request.Context(), old)
	}
	m.setCookie(c, sess.Token, int(m.TTL/time.Second))
	return sess, nil
}

// Current reads the persisted slot for the request's cookie. It returns
// false for a missing cookie, a missing or expired slot, or a slot that
// fails to parse; malformed state is cleared, never surfaced as an error.
func (m *Manager) Current(c *gin.Context) (identity.Identity, bool) {
	token, err := c.Cookie(CookieName)
	if err != nil || token == "" {
		return identity.Identity{}, false
	}
	sess, err := m.Store.Get(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			telemetry.Warn("session.lookup_failed", map[string]any{
				"err":        err.Error(),
				"request_id": c.GetString("requestId"),
			})
		}
		m.setCookie(c, "", -1)
		return identity.Identity{}, false
	}
	return sess.Identity, true
}

// SignOut clears the slot and the cookie.
func (m *Manager) SignOut(c *gin.Context) error {
	token, err := c.Cookie(CookieName)
	if err == nil && token != "" {
		if err := m.Store.Delete(c.Request.Context(), token); err != nil {
			telemetry.Warn("session.delete_failed", map[string]any{"err": err.Error()})
		}
	}
	m.setCookie(c, "", -1)
	return nil
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
