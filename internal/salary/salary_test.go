package salary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSanitizeQueryDefaults(t *testing.T) {
	q := SanitizeQuery("  ", "", "")
	if q.JobTitle != DefaultJobTitle {
		t.Errorf("job title = %q, want %q", q.JobTitle, DefaultJobTitle)
	}
	if q.Location != DefaultLocation {
		t.Errorf("location = %q, want %q", q.Location, DefaultLocation)
	}
	if q.YearsOfExperience != DefaultExperience {
		t.Errorf("experience = %q, want %q", q.YearsOfExperience, DefaultExperience)
	}
}

func TestSanitizeQueryTrims(t *testing.T) {
	q := SanitizeQuery("  golang developer ", " berlin  ", " one_to_three ")
	if q.JobTitle != "golang developer" {
		t.Errorf("job title = %q", q.JobTitle)
	}
	if q.Location != "berlin" {
		t.Errorf("location = %q", q.Location)
	}
	if q.YearsOfExperience != "ONE_TO_THREE" {
		t.Errorf("experience = %q", q.YearsOfExperience)
	}
}

func TestNormalizeExperience(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "ALL"},
		{"ALL", "ALL"},
		{"less_than_one", "LESS_THAN_ONE"},
		{"0", "LESS_THAN_ONE"},
		{"2", "ONE_TO_THREE"},
		{"5", "FOUR_TO_SIX"},
		{"8", "SEVEN_TO_NINE"},
		{"12", "TEN_TO_FOURTEEN"},
		{"15", "ABOVE_FIFTEEN"},
		{"40", "ABOVE_FIFTEEN"},
		{"-3", "ALL"},
		{"senior", "ALL"},
	}
	for _, tc := range cases {
		if got := NormalizeExperience(tc.in); got != tc.want {
			t.Errorf("NormalizeExperience(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	got := FormatAmount(120000, "USD")
	if !strings.Contains(got, "USD") || !strings.Contains(got, "120,000") {
		t.Errorf("FormatAmount(120000, USD) = %q", got)
	}
	if got := FormatAmount(95000, "bogus"); !strings.Contains(got, "USD") {
		t.Errorf("unknown code should fall back to USD, got %q", got)
	}
}

func TestClientEstimate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get-estimated-salary" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("job_title") != "golang developer" {
			t.Errorf("job_title = %q", q.Get("job_title"))
		}
		if q.Get("location") != "berlin" {
			t.Errorf("location = %q", q.Get("location"))
		}
		if q.Get("years_of_experience") != "FOUR_TO_SIX" {
			t.Errorf("years_of_experience = %q", q.Get("years_of_experience"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"median_salary":120000,"min_salary":90000,"max_salary":150000,"salary_currency":"USD"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	est, err := c.Estimate(context.Background(), Query{
		JobTitle:          "golang developer",
		Location:          "berlin",
		YearsOfExperience: "FOUR_TO_SIX",
	})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if est.MedianSalary != 120000 || est.SalaryCurrency != "USD" {
		t.Errorf("estimate = %+v", est)
	}
}

func TestClientEstimateNoData(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"median_salary":0,"min_salary":0,"max_salary":0,"salary_currency":""}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	if _, err := c.Estimate(context.Background(), Query{}); !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestClientEstimateServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	if _, err := c.Estimate(context.Background(), Query{}); err == nil {
		t.Error("expected error for 500 response")
	}
}

type fixedEstimator struct {
	est Estimate
	err error
}

func (f fixedEstimator) Estimate(ctx context.Context, q Query) (Estimate, error) {
	return f.est, f.err
}

func TestServiceLookupFormats(t *testing.T) {
	svc := NewService(fixedEstimator{est: Estimate{
		MedianSalary:   120000,
		MinSalary:      90000,
		MaxSalary:      150000,
		SalaryCurrency: "USD",
	}})
	res, err := svc.Lookup(context.Background(), "", "", "")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if res.JobTitle != DefaultJobTitle || res.Location != DefaultLocation {
		t.Errorf("defaults not applied: %+v", res)
	}
	if !strings.Contains(res.MedianSalary, "120,000") {
		t.Errorf("median = %q", res.MedianSalary)
	}
	if res.Currency != "USD" {
		t.Errorf("currency = %q", res.Currency)
	}
}

func TestServiceLookupPropagatesError(t *testing.T) {
	svc := NewService(fixedEstimator{err: errors.New("estimator down")})
	if _, err := svc.Lookup(context.Background(), "go dev", "berlin", "ALL"); err == nil {
		t.Error("expected error from estimator")
	}
}
