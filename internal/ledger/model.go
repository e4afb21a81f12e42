// Package ledger maintains the ordered, size-bounded history of past
// searches for one identity. The profile service holds the source of
// truth; local copies are replaced wholesale by its responses, never
// merged.
package ledger

import "time"

// MaxRecent bounds the ledger; the oldest record is evicted on overflow.
const MaxRecent = 5

// SearchRecord is one completed search. ID is the explicit record
// identifier attach operations target; "most recent" is never implied.
type SearchRecord struct {
	ID           string    `json:"id"`
	JobTitle     string    `json:"job_title"`
	Location     string    `json:"location"`
	MedianSalary *string   `json:"median_salary"`
	URL          *string   `json:"url"`
	CreatedAt    time.Time `json:"created_at"`
}

var ErrRecordNotFound = errRecordNotFound{}

type errRecordNotFound struct{}

func (errRecordNotFound) Error() string { return "search record not found" }
