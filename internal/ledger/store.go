package ledger

import "context"

// Store persists the recent-search ledger for each user id. Append
// returns the authoritative updated ledger; callers replace their local
// copy with it entirely.
type Store interface {
	Load(ctx context.Context, userID int64) ([]SearchRecord, error)
	Append(ctx context.Context, userID int64, rec SearchRecord) ([]SearchRecord, error)
	AttachMedianSalary(ctx context.Context, userID int64, recordID, salary string) error
	AttachURL(ctx context.Context, userID int64, recordID, url string) error
}
