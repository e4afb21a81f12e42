// Package jobsearch fetches live postings from the job-search
// collaborator. That service proxies an upstream aggregator and returns
// the upstream body stringified inside a JSON wrapper, so the payload is
// decoded twice here.
package jobsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Posting is one live job listing.
type Posting struct {
	JobID          string `json:"job_id"`
	JobTitle       string `json:"job_title"`
	EmployerName   string `json:"employer_name"`
	JobCity        string `json:"job_city"`
	JobCountry     string `json:"job_country"`
	JobApplyLink   string `json:"job_apply_link"`
	EmploymentType string `json:"job_employment_type"`
}

// Client calls the job-search service.
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

// Search returns postings for a free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]Posting, error) {
	params := url.Values{}
	params.Set("query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/jobs?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("jobsearch: build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jobsearch: fetch jobs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jobsearch: jobs returned status %d", resp.StatusCode)
	}

	// Outer wrapper carries the upstream response as a string.
	var wrapper struct {
		Jobs string `json:"jobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("jobsearch: decode wrapper: %w", err)
	}
	var upstream struct {
		Data []Posting `json:"data"`
	}
	if err := json.Unmarshal([]byte(wrapper.Jobs), &upstream); err != nil {
		return nil, fmt.Errorf("jobsearch: decode postings: %w", err)
	}
	return upstream.Data, nil
}
