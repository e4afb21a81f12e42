// Package salary orchestrates the salary-estimation collaborator:
// sanitize the search form, fetch the estimate, format it for display.
package salary

import (
	"strconv"
	"strings"
)

// Fixed defaults substituted for blank form fields.
const (
	DefaultJobTitle   = "nodejs developer"
	DefaultLocation   = "new york"
	DefaultExperience = "ALL"
)

// Query is a sanitized salary lookup request.
type Query struct {
	JobTitle          string
	Location          string
	YearsOfExperience string
}

// Experience buckets accepted by the estimator.
var experienceLevels = map[string]struct{}{
	"ALL":             {},
	"LESS_THAN_ONE":   {},
	"ONE_TO_THREE":    {},
	"FOUR_TO_SIX":     {},
	"SEVEN_TO_NINE":   {},
	"TEN_TO_FOURTEEN": {},
	"ABOVE_FIFTEEN":   {},
}

// SanitizeQuery trims the raw form fields and substitutes defaults for
// blank values. Experience accepts either a bucket name or a plain
// number of years (as produced by the resume estimate); anything else
// falls back to ALL.
func SanitizeQuery(jobTitle, location, experience string) Query {
	q := Query{
		JobTitle:          strings.TrimSpace(jobTitle),
		Location:          strings.TrimSpace(location),
		YearsOfExperience: NormalizeExperience(experience),
	}
	if q.JobTitle == "" {
		q.JobTitle = DefaultJobTitle
	}
	if q.Location == "" {
		q.Location = DefaultLocation
	}
	return q
}

// NormalizeExperience maps raw experience input to an estimator bucket.
func NormalizeExperience(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return DefaultExperience
	}
	if _, ok := experienceLevels[s]; ok {
		return s
	}
	years, err := strconv.Atoi(s)
	if err != nil || years < 0 {
		return DefaultExperience
	}
	switch {
	case years < 1:
		return "LESS_THAN_ONE"
	case years <= 3:
		return "ONE_TO_THREE"
	case years <= 6:
		return "FOUR_TO_SIX"
	case years <= 9:
		return "SEVEN_TO_NINE"
	case years <= 14:
		return "TEN_TO_FOURTEEN"
	default:
		return "ABOVE_FIFTEEN"
	}
}
