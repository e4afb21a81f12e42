// Package session owns the authenticated identity slot for each browser
// session. The slot is persisted server-side and referenced by an opaque
// cookie token; a missing, expired, or unparsable slot is always treated
// as "not signed in", never as an error surfaced to the user.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"salaryscope/internal/identity"
)

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "session not found" }

// Session is one authenticated identity slot.
type Session struct {
	Token     string            `json:"token"`
	Identity  identity.Identity `json:"identity"`
	CreatedAt time.Time         `json:"createdAt"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Store persists session slots. Get returns ErrNotFound for missing,
// expired, or malformed slots.
type Store interface {
	Put(ctx context.Context, sess Session) error
	Get(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
	PurgeExpired(ctx context.Context) (int, error)
}

func encodeSession(sess Session) ([]byte, error) {
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

// decodeSession parses a persisted slot. Garbage in the slot is reported
// as ErrNotFound so callers fall through to the anonymous path.
func decodeSession(data []byte) (Session, error) {
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, ErrNotFound
	}
	if sess.Token == "" || sess.Identity.ID < 0 {
		return Session{}, ErrNotFound
	}
	return sess, nil
}
