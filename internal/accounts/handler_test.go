package accounts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"salaryscope/internal/session"
)

func newTestRouter(t *testing.T) (*gin.Engine, *stubProfiles) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	profiles := newStubProfiles()
	sessions := session.NewManager(session.NewMemoryStore(), time.Hour, false)
	h := NewHandler(NewService(profiles), sessions)

	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r, profiles
}

func postJSON(r *gin.Engine, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == session.CookieName && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestSignUpStartsSession(t *testing.T) {
	r, _ := newTestRouter(t)
	w := postJSON(r, "/api/v1/auth/signup", `{"email":"test@example.com","password":"secret"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp authResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.User.Username != "test@example.com" || resp.Redirect != "/search" {
		t.Errorf("response = %+v", resp)
	}
	sessionCookieFrom(t, w)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	r, _ := newTestRouter(t)
	postJSON(r, "/api/v1/auth/signup", `{"email":"dup@example.com","password":"a"}`)
	w := postJSON(r, "/api/v1/auth/signup", `{"email":"dup@example.com","password":"b"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d", w.Code)
	}
}

func TestSignUpValidation(t *testing.T) {
	r, _ := newTestRouter(t)
	w := postJSON(r, "/api/v1/auth/signup", `{"email":"  ","password":""}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestLogInWrongPassword(t *testing.T) {
	r, _ := newTestRouter(t)
	postJSON(r, "/api/v1/auth/signup", `{"email":"user@example.com","password":"secret"}`)
	w := postJSON(r, "/api/v1/auth/login", `{"email":"user@example.com","password":"nope"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid email or password.") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestLogInRedirectsWhenAlreadyAuthenticated(t *testing.T) {
	r, _ := newTestRouter(t)
	signedUp := postJSON(r, "/api/v1/auth/signup", `{"email":"user@example.com","password":"secret"}`)
	ck := sessionCookieFrom(t, signedUp)

	w := postJSON(r, "/api/v1/auth/login", `{"email":"user@example.com","password":"secret"}`, ck)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"/search"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestLogOutClearsSession(t *testing.T) {
	r, _ := newTestRouter(t)
	signedUp := postJSON(r, "/api/v1/auth/signup", `{"email":"user@example.com","password":"secret"}`)
	ck := sessionCookieFrom(t, signedUp)

	w := postJSON(r, "/api/v1/auth/logout", ``, ck)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	// The cleared cookie must carry a negative MaxAge.
	for _, out := range w.Result().Cookies() {
		if out.Name == session.CookieName && out.MaxAge >= 0 && out.Value != "" {
			t.Errorf("logout left live cookie %+v", out)
		}
	}

	// The stale cookie no longer authenticates, so a real login happens.
	again := postJSON(r, "/api/v1/auth/login", `{"email":"user@example.com","password":"secret"}`, ck)
	if again.Code != http.StatusOK {
		t.Fatalf("login after logout status = %d", again.Code)
	}
	if !strings.Contains(again.Body.String(), `"user"`) {
		t.Errorf("expected fresh login payload, got %s", again.Body.String())
	}
}
