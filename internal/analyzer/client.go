// Package analyzer calls the resume-analysis collaborator, which infers
// years of experience and suggested job titles from an uploaded PDF.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ExperienceEstimate is the /estimate-experience payload.
type ExperienceEstimate struct {
	JobTitle       string  `json:"job_title"`
	EstimatedYears float64 `json:"estimated_years"`
}

// Client calls the resume analyzer service.
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

// EstimateExperience infers years of experience for a job title from a resume.
func (c *Client) EstimateExperience(ctx context.Context, fileName string, resume []byte, jobTitle string) (ExperienceEstimate, error) {
	var est ExperienceEstimate
	fields := map[string]string{"job_title": jobTitle}
	if err := c.postResume(ctx, "/estimate-experience", fileName, resume, fields, &est); err != nil {
		return ExperienceEstimate{}, err
	}
	return est, nil
}

// SuggestJobTitles returns job titles matching the resume.
func (c *Client) SuggestJobTitles(ctx context.Context, fileName string, resume []byte) ([]string, error) {
	var body struct {
		SuggestedJobTitles []string `json:"suggested_job_titles"`
	}
	if err := c.postResume(ctx, "/suggest-job-titles", fileName, resume, nil, &body); err != nil {
		return nil, err
	}
	return body.SuggestedJobTitles, nil
}

// SuggestJobTitlesWithReasons returns suggested titles annotated with reasoning.
func (c *Client) SuggestJobTitlesWithReasons(ctx context.Context, fileName string, resume []byte) ([]string, error) {
	var body struct {
		SuggestionsWithReasons []string `json:"suggestions_with_reasons"`
	}
	if err := c.postResume(ctx, "/suggest-job-titles-with-reasons", fileName, resume, nil, &body); err != nil {
		return nil, err
	}
	return body.SuggestionsWithReasons, nil
}

// ReasonsForJobTitles explains why each given title fits the resume.
// Titles travel as a single comma-separated form field.
func (c *Client) ReasonsForJobTitles(ctx context.Context, fileName string, resume []byte, jobTitles []string) ([]string, error) {
	var body struct {
		Reasons []string `json:"reasons"`
	}
	fields := map[string]string{"job_titles": strings.Join(jobTitles, ",")}
	if err := c.postResume(ctx, "/reasons-for-job-titles", fileName, resume, fields, &body); err != nil {
		return nil, err
	}
	return body.Reasons, nil
}

func (c *Client) postResume(ctx context.Context, path, fileName string, resume []byte, fields map[string]string, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("analyzer: build form: %w", err)
	}
	if _, err := part.Write(resume); err != nil {
		return fmt.Errorf("analyzer: write resume part: %w", err)
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return fmt.Errorf("analyzer: write field %s: %w", name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("analyzer: finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("analyzer: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("analyzer: call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("analyzer: %s returned status %d: %s", path, resp.StatusCode, readError(resp.Body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("analyzer: decode %s response: %w", path, err)
	}
	return nil
}

// readError pulls the collaborator's {"error": "..."} message, if any.
func readError(r io.Reader) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 1<<20)).Decode(&body); err != nil || body.Error == "" {
		return "unknown error"
	}
	return body.Error
}
