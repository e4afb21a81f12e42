package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCreateUserSendsExpectedShape(t *testing.T) {
	var got createUserRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users/" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"User created"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, time.Second)
	if err := client.CreateUser(context.Background(), 1405876145, "test@example.com", "password"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if got.ID != 1405876145 || got.Username != "test@example.com" || got.Password != "password" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"User with this ID already exists."}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, time.Second)
	err := client.CreateUser(context.Background(), 7, "dup@example.com", "pw")
	if err != ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestGetPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/42/password" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte("password"))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, time.Second)
	pw, err := client.GetPassword(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetPassword: %v", err)
	}
	if pw != "password" {
		t.Fatalf("expected %q, got %q", "password", pw)
	}
}

func TestGetUsernameNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"User not found"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, time.Second)
	if _, err := client.GetUsername(context.Background(), 9); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
