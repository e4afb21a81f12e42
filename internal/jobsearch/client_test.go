package jobsearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSearchDecodesStringifiedPayload(t *testing.T) {
	upstream := `{"status":"OK","data":[{"job_id":"abc123","job_title":"Go Developer","employer_name":"Acme","job_city":"Berlin","job_country":"DE","job_apply_link":"https://example.com/apply","job_employment_type":"FULLTIME"}]}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jobs" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "go developer berlin" {
			t.Errorf("query = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"jobs": upstream})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	postings, err := c.Search(context.Background(), "go developer berlin")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(postings) != 1 {
		t.Fatalf("postings = %v", postings)
	}
	p := postings[0]
	if p.JobTitle != "Go Developer" || p.EmployerName != "Acme" || p.JobApplyLink != "https://example.com/apply" {
		t.Errorf("posting = %+v", p)
	}
}

func TestSearchRejectsMalformedInnerPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jobs":"not json"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	if _, err := c.Search(context.Background(), "dev"); err == nil {
		t.Error("expected decode error")
	}
}

func TestSearchServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	if _, err := c.Search(context.Background(), "dev"); err == nil {
		t.Error("expected error for 502 response")
	}
}
