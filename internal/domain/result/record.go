// Package result holds the audit record of a finished comparison.
package result

import (
	"fmt"
	"time"
)

// Record is one persisted comparison: the two file identifiers and their score.
type Record struct {
	ID        string
	FileA     string
	FileB     string
	Score     float64
	CreatedAt time.Time
}

// Validate checks that a record can be stored.
func (r Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record ID is required")
	}
	if r.FileA == "" || r.FileB == "" {
		return fmt.Errorf("both file identifiers are required")
	}
	if r.Score < 0 || r.Score > 1 || r.Score != r.Score {
		return fmt.Errorf("score %v out of range [0, 1]", r.Score)
	}
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("created_at is required")
	}
	return nil
}

// Percent renders the score as shown to users, e.g. "87.50%".
func (r Record) Percent() string {
	return fmt.Sprintf("%.2f%%", r.Score*100)
}
