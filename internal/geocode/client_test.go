package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "new york" {
			t.Errorf("q = %q", q.Get("q"))
		}
		if q.Get("format") != "json" || q.Get("addressdetails") != "1" || q.Get("limit") != "5" {
			t.Errorf("query params = %v", q)
		}
		if got := r.Header.Get("Accept-Language"); got != "en" {
			t.Errorf("Accept-Language = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"display_name":"New York, United States","lat":"40.7127281","lon":"-74.0060152","address":{"city":"New York","state":"New York","country":"United States"}}]`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	places, err := c.Search(context.Background(), "new york")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(places) != 1 {
		t.Fatalf("places = %v", places)
	}
	if places[0].Address.City != "New York" || places[0].Lat != "40.7127281" {
		t.Errorf("place = %+v", places[0])
	}
}

func TestSearchServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	if _, err := c.Search(context.Background(), "berlin"); err == nil {
		t.Error("expected error for 429 response")
	}
}
