package session

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"salaryscope/internal/identity"
)

func TestPGStorePut(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := &PGStore{DB: db}
	now := time.Now().UTC()
	sess := Session{
		Token:     "tok-1",
		Identity:  identity.Identity{ID: 42, Username: "test@example.com"},
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(sess.Token, sess.Identity.ID, sess.Identity.Username, sess.CreatedAt, sess.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Put(context.Background(), sess); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreGetMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := &PGStore{DB: db}
	mock.ExpectQuery("SELECT token, user_id, username, created_at, expires_at").
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"token", "user_id", "username", "created_at", "expires_at"}))

	if _, err := store.Get(context.Background(), "gone"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStorePurgeExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := &PGStore{DB: db}
	mock.ExpectExec("DELETE FROM sessions WHERE expires_at").
		WillReturnResult(sqlmock.NewResult(0, 3))

	purged, err := store.PurgeExpired(context.Background())
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if purged != 3 {
		t.Fatalf("expected 3 purged rows, got %d", purged)
	}
}
