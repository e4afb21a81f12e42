// Package search serves the home and results views: recent-search
// history, search submission with optional resume analysis, salary
// results, live postings, and location autocomplete.
package search

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"salaryscope/internal/analyzer"
	"salaryscope/internal/geocode"
	"salaryscope/internal/jobsearch"
	"salaryscope/internal/ledger"
	"salaryscope/internal/resume"
	"salaryscope/internal/salary"
	"salaryscope/internal/session"
	"salaryscope/internal/shared/server/respond"
	"salaryscope/internal/shared/telemetry"
)

// maxResumeBytes bounds the uploaded resume size.
const maxResumeBytes = 10 << 20

// SalaryLookup resolves a raw search into a formatted salary result.
type SalaryLookup interface {
	Lookup(ctx context.Context, jobTitle, location, experience string) (salary.Result, error)
}

// SuggestionFlow runs the resume analysis sequence.
type SuggestionFlow interface {
	Analyze(ctx context.Context, fileName string, resume []byte, jobTitle string) (analyzer.Suggestions, error)
}

// JobSearcher fetches live postings.
type JobSearcher interface {
	Search(ctx context.Context, query string) ([]jobsearch.Posting, error)
}

// LocationSearcher backs the location autocomplete.
type LocationSearcher interface {
	Search(ctx context.Context, query string) ([]geocode.Place, error)
}

type Handler struct {
	Ledger    *ledger.Service
	Resumes   *resume.Cache
	Salary    SalaryLookup
	Analyzer  SuggestionFlow
	Jobs      JobSearcher
	Locations LocationSearcher
}

// RegisterRoutes mounts the protected search routes and the public
// autocomplete route.
func (h *Handler) RegisterRoutes(protected, public *gin.RouterGroup) {
	protected.GET("/search", h.getSearch)
	protected.POST("/search", h.postSearch)
	protected.GET("/results", h.getResults)
	protected.GET("/jobs", h.getJobs)
	public.GET("/locations", h.getLocations)
}

// getSearch renders the home view state: the recent-search history for
// the signed-in identity. A ledger outage degrades to an empty history
// with a warning rather than an error page.
func (h *Handler) getSearch(c *gin.Context) {
	ident, ok := session.IdentityFromContext(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}
	records, err := h.Ledger.Load(c.Request.Context(), ident.ID)
	resp := gin.H{"recent_searches": records}
	if err != nil {
		resp["warning"] = "Could not load recent searches."
	}
	respond.OK(c, resp)
}

type searchResponse struct {
	JobTitle               string   `json:"job_title"`
	Location               string   `json:"location"`
	YearsOfExperience      string   `json:"years_of_experience"`
	SuggestionsWithReasons []string `json:"suggestions_with_reasons,omitempty"`
}

// postSearch accepts the search form. An attached resume must be a PDF;
// it is cached for the session and analyzed for experience and title
// suggestions. Without a fresh upload, a previously cached resume is
// reused. The response carries the parameters the results view needs.
func (h *Handler) postSearch(c *gin.Context) {
	jobTitle := strings.TrimSpace(c.PostForm("job_title"))
	location := strings.TrimSpace(c.PostForm("location"))
	experience := c.PostForm("years_of_experience")

	blob, hasResume := h.resumeForRequest(c)
	if c.IsAborted() {
		return
	}

	resp := searchResponse{
		JobTitle:          jobTitle,
		Location:          location,
		YearsOfExperience: salary.NormalizeExperience(experience),
	}
	if hasResume {
		sug, err := h.Analyzer.Analyze(c.Request.Context(), blob.FileName, blob.Data, jobTitle)
		if err != nil {
			respond.Error(c, http.StatusBadGateway, "analyzer_unavailable", "Could not analyze the resume.", nil)
			return
		}
		resp.YearsOfExperience = salary.NormalizeExperience(sug.EstimatedYears)
		resp.SuggestionsWithReasons = sug.SuggestionsWithReasons
	}
	respond.OK(c, resp)
}

// resumeForRequest returns the resume to analyze: a fresh upload when
// present (validated and cached), otherwise the session's cached blob.
// Validation failures abort the request with a 400.
func (h *Handler) resumeForRequest(c *gin.Context) (resume.Blob, bool) {
	header, err := c.FormFile("resume")
	if err != nil {
		// No upload in this submission; fall back to the cache.
		token, cookieErr := c.Cookie(session.CookieName)
		if cookieErr != nil || token == "" {
			return resume.Blob{}, false
		}
		blob, loadErr := h.Resumes.Load(c.Request.Context(), token)
		if loadErr != nil {
			return resume.Blob{}, false
		}
		return blob, true
	}

	if header.Size > maxResumeBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume exceeds the 10MB limit", nil)
		return resume.Blob{}, false
	}
	file, err := header.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read the uploaded resume", nil)
		return resume.Blob{}, false
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxResumeBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read the uploaded resume", nil)
		return resume.Blob{}, false
	}
	if err := resume.ValidatePDF(data); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Only PDF resumes are accepted.", nil)
		return resume.Blob{}, false
	}

	blob := resume.Blob{
		FileName: header.Filename,
		MimeType: resume.MimePDF,
		Data:     data,
	}
	if token, cookieErr := c.Cookie(session.CookieName); cookieErr == nil && token != "" {
		if saveErr := h.Resumes.Save(c.Request.Context(), token, blob); saveErr != nil {
			// Analysis can still proceed with the in-memory bytes.
			telemetry.Warn("resume.cache_failed", map[string]any{"err": saveErr.Error()})
		}
	}
	return blob, true
}

type resultsResponse struct {
	Salary         salary.Result         `json:"salary"`
	RecordID       string                `json:"record_id,omitempty"`
	RecentSearches []ledger.SearchRecord `json:"recent_searches,omitempty"`
	Warning        string                `json:"warning,omitempty"`
}

// getResults runs the salary flow for the query parameters and, on
// success, appends the search to the ledger and attaches the median
// salary and canonical results URL to the new record. A salary failure
// leaves the ledger untouched.
func (h *Handler) getResults(c *gin.Context) {
	ident, ok := session.IdentityFromContext(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}

	result, err := h.Salary.Lookup(c.Request.Context(),
		c.Query("job_title"), c.Query("location"), c.Query("years_of_experience"))
	if err != nil {
		if errors.Is(err, salary.ErrNoData) {
			respond.Error(c, http.StatusNotFound, "no_salary_data", "No salary data available for this search.", nil)
			return
		}
		respond.Error(c, http.StatusBadGateway, "salary_unavailable", "Could not fetch salary estimates.", nil)
		return
	}

	resp := resultsResponse{Salary: result}
	rec, records, err := h.Ledger.Append(c.Request.Context(), ident.ID, result.JobTitle, result.Location, nil)
	if err != nil {
		resp.Warning = "Search completed but could not be saved to history."
	} else {
		resp.RecordID = rec.ID
		resp.RecentSearches = records
		h.Ledger.AttachURL(ident.ID, rec.ID, canonicalResultsURL(result))
		h.Ledger.AttachMedianSalary(ident.ID, rec.ID, result.MedianSalary)
	}
	respond.OK(c, resp)
}

// canonicalResultsURL is the shareable link stored on the ledger record.
func canonicalResultsURL(r salary.Result) string {
	params := url.Values{}
	params.Set("job_title", r.JobTitle)
	params.Set("location", r.Location)
	params.Set("years_of_experience", r.YearsOfExperience)
	return "/results?" + params.Encode()
}

// getJobs proxies live postings for a free-text query.
func (h *Handler) getJobs(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		query = "developer jobs"
	}
	postings, err := h.Jobs.Search(c.Request.Context(), query)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "jobs_unavailable", "Could not fetch job postings.", nil)
		return
	}
	respond.OK(c, gin.H{"jobs": postings})
}

// getLocations serves the location autocomplete. Queries shorter than
// three characters return an empty list without hitting the geocoder.
func (h *Handler) getLocations(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < 3 {
		respond.OK(c, gin.H{"locations": []geocode.Place{}})
		return
	}
	places, err := h.Locations.Search(c.Request.Context(), query)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "geocode_unavailable", "Could not look up locations.", nil)
		return
	}
	respond.OK(c, gin.H{"locations": places})
}
