package salary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Estimate is the collaborator's salary payload.
type Estimate struct {
	MedianSalary   float64 `json:"median_salary"`
	MinSalary      float64 `json:"min_salary"`
	MaxSalary      float64 `json:"max_salary"`
	SalaryCurrency string  `json:"salary_currency"`
}

// ErrNoData means the estimator had no figures for the query.
var ErrNoData = errNoData{}

type errNoData struct{}

func (errNoData) Error() string { return "salary: no data for query" }

// Client calls the salary estimation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Estimate fetches salary figures for a sanitized query. An all-zero
// payload is reported as ErrNoData so callers can distinguish "the
// estimator had nothing" from transport failures.
func (c *Client) Estimate(ctx context.Context, q Query) (Estimate, error) {
	params := url.Values{}
	params.Set("job_title", q.JobTitle)
	params.Set("location", q.Location)
	params.Set("years_of_experience", q.YearsOfExperience)

	endpoint := c.baseURL + "/get-estimated-salary?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Estimate{}, fmt.Errorf("salary: build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Estimate{}, fmt.Errorf("salary: fetch estimate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Estimate{}, fmt.Errorf("salary: estimate returned status %d", resp.StatusCode)
	}
	var est Estimate
	if err := json.NewDecoder(resp.Body).Decode(&est); err != nil {
		return Estimate{}, fmt.Errorf("salary: decode estimate: %w", err)
	}
	if est.MedianSalary == 0 && est.MinSalary == 0 && est.MaxSalary == 0 {
		return Estimate{}, ErrNoData
	}
	return est, nil
}
