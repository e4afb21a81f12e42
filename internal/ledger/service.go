package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"salaryscope/internal/shared/telemetry"
)

// Service wraps a Store with the client-side ledger semantics: append
// and attach calls for one identity are serialized through a per-user
// queue so rapid navigation cannot interleave them, loads fail soft to
// an empty ledger, and attach updates are fire-and-forget.
type Service struct {
	store   Store
	timeout time.Duration

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
	wg    sync.WaitGroup
}

func NewService(store Store, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		store:   store,
		timeout: timeout,
		locks:   make(map[int64]*sync.Mutex),
	}
}

func (s *Service) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// Load fetches the remote ledger. On failure it returns an empty
// sequence along with the error so the page still renders; the caller
// treats the error as a non-fatal warning.
func (s *Service) Load(ctx context.Context, userID int64) ([]SearchRecord, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	records, err := s.store.Load(ctx, userID)
	if err != nil {
		telemetry.Warn("ledger.load_failed", map[string]any{
			"user_id": userID,
			"err":     err.Error(),
		})
		return []SearchRecord{}, err
	}
	if records == nil {
		records = []SearchRecord{}
	}
	return records, nil
}

// Append records a completed search and returns the new record plus the
// authoritative updated ledger. On failure the local ledger is left
// unchanged and the error is logged; callers treat it as non-blocking.
func (s *Service) Append(ctx context.Context, userID int64, jobTitle, location string, medianSalary *string) (SearchRecord, []SearchRecord, error) {
	rec := SearchRecord{
		ID:           uuid.NewString(),
		JobTitle:     jobTitle,
		Location:     location,
		MedianSalary: medianSalary,
		CreatedAt:    time.Now().UTC(),
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	records, err := s.store.Append(ctx, userID, rec)
	if err != nil {
		telemetry.Error("ledger.append_failed", map[string]any{
			"user_id":   userID,
			"job_title": jobTitle,
			"err":       err.Error(),
		})
		return SearchRecord{}, nil, err
	}
	return rec, records, nil
}

// AttachMedianSalary updates the named record's median salary,
// best-effort in the background. Failures are logged only.
func (s *Service) AttachMedianSalary(userID int64, recordID, salary string) {
	s.attach(userID, recordID, "median_salary", func(ctx context.Context) error {
		return s.store.AttachMedianSalary(ctx, userID, recordID, salary)
	})
}

// AttachURL updates the named record's canonical results URL,
// best-effort in the background. Failures are logged only.
func (s *Service) AttachURL(userID int64, recordID, url string) {
	s.attach(userID, recordID, "url", func(ctx context.Context) error {
		return s.store.AttachURL(ctx, userID, recordID, url)
	})
}

func (s *Service) attach(userID int64, recordID, field string, op func(context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		// Detached from the request: the update should land even if the
		// user has already navigated away.
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		lock := s.userLock(userID)
		lock.Lock()
		defer lock.Unlock()

		if err := op(ctx); err != nil {
			telemetry.Warn("ledger.attach_failed", map[string]any{
				"user_id":   userID,
				"record_id": recordID,
				"field":     field,
				"err":       err.Error(),
			})
		}
	}()
}

// Flush blocks until all in-flight attach updates have completed.
func (s *Service) Flush() {
	s.wg.Wait()
}
