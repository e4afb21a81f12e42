package session

import (
	"context"
	"database/sql"
	"errors"
)

// PGStore persists session slots in Postgres.
type PGStore struct {
	DB *sql.DB
}

func (s *PGStore) Put(ctx context.Context, sess Session) error {
	const query = `
INSERT INTO sessions (token, user_id, username, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (token) DO UPDATE SET
  user_id = EXCLUDED.user_id,
  username = EXCLUDED.username,
  expires_at = EXCLUDED.expires_at`
	_, err := s.DB.ExecContext(ctx, query,
		sess.Token,
		sess.Identity.ID,
		sess.Identity.Username,
		sess.CreatedAt,
		sess.ExpiresAt,
	)
	return err
}

func (s *PGStore) Get(ctx context.Context, token string) (Session, error) {
	const query = `
SELECT token, user_id, username, created_at, expires_at
FROM sessions
WHERE token = $1 AND expires_at > now()
LIMIT 1`
	var sess Session
	err := s.DB.QueryRowContext(ctx, query, token).Scan(
		&sess.Token,
		&sess.Identity.ID,
		&sess.Identity.Username,
		&sess.CreatedAt,
		&sess.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	return sess, nil
}

func (s *PGStore) Delete(ctx context.Context, token string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

func (s *PGStore) PurgeExpired(ctx context.Context) (int, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(n), nil
}

var _ Store = (*PGStore)(nil)
