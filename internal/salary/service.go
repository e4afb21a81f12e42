package salary

import (
	"context"
)

// Result is a salary estimate ready for display.
type Result struct {
	JobTitle          string `json:"job_title"`
	Location          string `json:"location"`
	YearsOfExperience string `json:"years_of_experience"`
	MinSalary         string `json:"min_salary"`
	MedianSalary      string `json:"median_salary"`
	MaxSalary         string `json:"max_salary"`
	Currency          string `json:"currency"`
}

// Estimator fetches salary figures for a sanitized query.
type Estimator interface {
	Estimate(ctx context.Context, q Query) (Estimate, error)
}

// Service sanitizes lookups and formats estimates for display.
type Service struct {
	estimator Estimator
}

func NewService(estimator Estimator) *Service {
	return &Service{estimator: estimator}
}

// Lookup resolves a raw search into a formatted salary result.
func (s *Service) Lookup(ctx context.Context, jobTitle, location, experience string) (Result, error) {
	q := SanitizeQuery(jobTitle, location, experience)
	est, err := s.estimator.Estimate(ctx, q)
	if err != nil {
		return Result{}, err
	}
	return Result{
		JobTitle:          q.JobTitle,
		Location:          q.Location,
		YearsOfExperience: q.YearsOfExperience,
		MinSalary:         FormatAmount(est.MinSalary, est.SalaryCurrency),
		MedianSalary:      FormatAmount(est.MedianSalary, est.SalaryCurrency),
		MaxSalary:         FormatAmount(est.MaxSalary, est.SalaryCurrency),
		Currency:          est.SalaryCurrency,
	}, nil
}
