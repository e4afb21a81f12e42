package analyzer

import (
	"context"
	"strconv"
)

// Suggestions is the outcome of one resume analysis pass.
type Suggestions struct {
	JobTitle               string   `json:"job_title"`
	EstimatedYears         string   `json:"estimated_years"`
	SuggestionsWithReasons []string `json:"suggestions_with_reasons"`
}

// Analyzer is the subset of Client the flow needs.
type Analyzer interface {
	EstimateExperience(ctx context.Context, fileName string, resume []byte, jobTitle string) (ExperienceEstimate, error)
	SuggestJobTitlesWithReasons(ctx context.Context, fileName string, resume []byte) ([]string, error)
}

// Flow runs the resume analysis sequence for a search submission.
type Flow struct {
	analyzer Analyzer
}

func NewFlow(analyzer Analyzer) *Flow {
	return &Flow{analyzer: analyzer}
}

// Analyze estimates experience for the entered job title, then fetches
// title suggestions with reasons. The first failure aborts the
// remaining calls and is returned as-is.
func (f *Flow) Analyze(ctx context.Context, fileName string, resume []byte, jobTitle string) (Suggestions, error) {
	est, err := f.analyzer.EstimateExperience(ctx, fileName, resume, jobTitle)
	if err != nil {
		return Suggestions{}, err
	}
	withReasons, err := f.analyzer.SuggestJobTitlesWithReasons(ctx, fileName, resume)
	if err != nil {
		return Suggestions{}, err
	}
	return Suggestions{
		JobTitle:               est.JobTitle,
		EstimatedYears:         strconv.FormatFloat(est.EstimatedYears, 'f', -1, 64),
		SuggestionsWithReasons: withReasons,
	}, nil
}
