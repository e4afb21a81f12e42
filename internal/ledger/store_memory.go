package ledger

import (
	"context"
	"sync"
)

// MemoryStore keeps ledgers in process memory. It is the fallback when
// no profile service is configured and owns the same bound-to-MaxRecent,
// most-recent-first maintenance the service performs remotely.
type MemoryStore struct {
	mu      sync.RWMutex
	ledgers map[int64][]SearchRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ledgers: make(map[int64][]SearchRecord)}
}

func (s *MemoryStore) Load(ctx context.Context, userID int64) ([]SearchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.ledgers[userID]
	out := make([]SearchRecord, len(records))
	copy(out, records)
	return out, nil
}

func (s *MemoryStore) Append(ctx context.Context, userID int64, rec SearchRecord) ([]SearchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records := append([]SearchRecord{rec}, s.ledgers[userID]...)
	if len(records) > MaxRecent {
		records = records[:MaxRecent]
	}
	s.ledgers[userID] = records

	out := make([]SearchRecord, len(records))
	copy(out, records)
	return out, nil
}

func (s *MemoryStore) AttachMedianSalary(ctx context.Context, userID int64, recordID, salary string) error {
	return s.mutate(ctx, userID, recordID, func(rec *SearchRecord) {
		rec.MedianSalary = &salary
	})
}

func (s *MemoryStore) AttachURL(ctx context.Context, userID int64, recordID, url string) error {
	return s.mutate(ctx, userID, recordID, func(rec *SearchRecord) {
		rec.URL = &url
	})
}

func (s *MemoryStore) mutate(ctx context.Context, userID int64, recordID string, apply func(*SearchRecord)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.ledgers[userID]
	for i := range records {
		if records[i].ID == recordID {
			apply(&records[i])
			return nil
		}
	}
	return ErrRecordNotFound
}

var _ Store = (*MemoryStore)(nil)
