package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"salaryscope/internal/identity"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == CookieName {
			return ck
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestManagerSignInRoundTrip(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour, false)
	ident := identity.Identity{ID: 1405876145, Username: "test@example.com"}

	c, w := newTestContext(t)
	if _, err := m.SignIn(c, ident); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	ck := sessionCookie(t, w)
	if ck.Value == "" {
		t.Fatal("expected non-empty session token")
	}

	// A later request with the issued cookie resolves the same identity.
	c2, _ := newTestContext(t)
	c2.Request.AddCookie(ck)
	got, ok := m.Current(c2)
	if !ok {
		t.Fatal("expected authenticated session")
	}
	if got != ident {
		t.Fatalf("expected %+v, got %+v", ident, got)
	}
}

func TestManagerSignOut(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour, false)

	c, w := newTestContext(t)
	if _, err := m.SignIn(c, identity.Identity{ID: 7, Username: "a@b.c"}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	ck := sessionCookie(t, w)

	c2, _ := newTestContext(t)
	c2.Request.AddCookie(ck)
	if err := m.SignOut(c2); err != nil {
		t.Fatalf("SignOut: %v", err)
	}

	c3, _ := newTestContext(t)
	c3.Request.AddCookie(ck)
	if _, ok := m.Current(c3); ok {
		t.Fatal("expected anonymous after sign-out")
	}
}

func TestManagerSignInOverwritesPriorSlot(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, time.Hour, false)

	c, w := newTestContext(t)
	if _, err := m.SignIn(c, identity.Identity{ID: 1, Username: "first@example.com"}); err != nil {
		t.Fatalf("SignIn first: %v", err)
	}
	first := sessionCookie(t, w)

	c2, w2 := newTestContext(t)
	c2.Request.AddCookie(first)
	if _, err := m.SignIn(c2, identity.Identity{ID: 2, Username: "second@example.com"}); err != nil {
		t.Fatalf("SignIn second: %v", err)
	}
	second := sessionCookie(t, w2)

	// Old token slot is gone, new one resolves the new identity.
	if _, err := store.Get(context.Background(), first.Value); err != ErrNotFound {
		t.Fatalf("expected old slot dropped, got %v", err)
	}
	c3, _ := newTestContext(t)
	c3.Request.AddCookie(second)
	got, ok := m.Current(c3)
	if !ok || got.Username != "second@example.com" {
		t.Fatalf("expected second identity, got %+v ok=%v", got, ok)
	}
}

func TestManagerCurrentMissingCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour, false)
	c, _ := newTestContext(t)
	if _, ok := m.Current(c); ok {
		t.Fatal("expected anonymous without cookie")
	}
}

func TestManagerCurrentUnknownToken(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour, false)
	c, w := newTestContext(t)
	c.Request.AddCookie(&http.Cookie{Name: CookieName, Value: "no-such-token"})
	if _, ok := m.Current(c); ok {
		t.Fatal("expected anonymous for unknown token")
	}
	// The dangling cookie is cleared.
	ck := sessionCookie(t, w)
	if ck.MaxAge >= 0 || ck.Value != "" {
		t.Fatalf("expected cleared cookie, got value=%q maxAge=%d", ck.Value, ck.MaxAge)
	}
}

type failingStore struct{}

func (failingStore) Put(context.Context, Session) error { return errors.New("boom") }
func (failingStore) Get(context.Context, string) (Session, error) {
	return Session{}, errors.New("boom")
}
func (failingStore) Delete(context.Context, string) error    { return errors.New("boom") }
func (failingStore) PurgeExpired(context.Context) (int, error) { return 0, nil }

func TestManagerCurrentStoreFailureIsAnonymous(t *testing.T) {
	m := NewManager(failingStore{}, time.Hour, false)
	c, _ := newTestContext(t)
	c.Request.AddCookie(&http.Cookie{Name: CookieName, Value: "tok"})
	if _, ok := m.Current(c); ok {
		t.Fatal("store failure must read as anonymous, not error")
	}
}
