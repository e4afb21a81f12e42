package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RemoteStore reads and writes the ledger through the profile service's
// recent-search endpoints. The service performs the bound-to-MaxRecent
// maintenance; Append returns its authoritative list.
type RemoteStore struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemoteStore constructs a remote ledger store against the profile
// service base URL. timeout bounds every call.
func NewRemoteStore(baseURL string, timeout time.Duration) *RemoteStore {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type ledgerResponse struct {
	RecentSearches []SearchRecord `json:"recent_searches"`
}

func (s *RemoteStore) Load(ctx context.Context, userID int64) ([]SearchRecord, error) {
	url := fmt.Sprintf("%s/users/%d/recent", s.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("recent request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// No ledger yet for this user.
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("profile service: recent status %d", resp.StatusCode)
	}

	var body ledgerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("profile service: decode recent: %w", err)
	}
	return body.RecentSearches, nil
}

func (s *RemoteStore) Append(ctx context.Context, userID int64, rec SearchRecord) ([]SearchRecord, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	url := fmt.Sprintf("%s/users/%d/recent", s.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("append request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("profile service: append status %d", resp.StatusCode)
	}

	var body ledgerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("profile service: decode append: %w", err)
	}
	return body.RecentSearches, nil
}

func (s *RemoteStore) AttachMedianSalary(ctx context.Context, userID int64, recordID, salary string) error {
	url := fmt.Sprintf("%s/users/%d/recent/%s/salary", s.baseURL, userID, recordID)
	return s.put(ctx, url, map[string]string{"median_salary": salary})
}

func (s *RemoteStore) AttachURL(ctx context.Context, userID int64, recordID, resultURL string) error {
	url := fmt.Sprintf("%s/users/%d/recent/%s/url", s.baseURL, userID, recordID)
	return s.put(ctx, url, map[string]string{"url": resultURL})
}

func (s *RemoteStore) put(ctx context.Context, url string, body map[string]string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("profile service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrRecordNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("profile service: update status %d", resp.StatusCode)
	}
	return nil
}

var _ Store = (*RemoteStore)(nil)
