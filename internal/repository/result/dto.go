package result

import (
	"fmt"
	"strconv"
	"time"

	domresult "github.com/kailas-cloud/docsim/internal/domain/result"
)

// timeLayout is fixed-width so stored timestamps sort lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const (
	fieldFileA     = "file_a"
	fieldFileB     = "file_b"
	fieldScore     = "score"
	fieldCreatedAt = "created_at"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// Rows written by other tools may use plain RFC 3339.
		t, err = time.Parse(time.RFC3339Nano, s)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// buildHashFields converts a Record into a flat map for HSET.
func buildHashFields(r domresult.Record) map[string]string {
	return map[string]string{
		fieldFileA:     r.FileA,
		fieldFileB:     r.FileB,
		fieldScore:     strconv.FormatFloat(r.Score, 'f', -1, 64),
		fieldCreatedAt: formatTime(r.CreatedAt),
	}
}

// parseHashFields converts a flat hash map back into a Record.
func parseHashFields(id string, m map[string]string) (domresult.Record, error) {
	score, err := strconv.ParseFloat(m[fieldScore], 64)
	if err != nil {
		return domresult.Record{}, fmt.Errorf("parse score for %s: %w", id, err)
	}
	created, err := parseTime(m[fieldCreatedAt])
	if err != nil {
		return domresult.Record{}, err
	}
	return domresult.Record{
		ID:        id,
		FileA:     m[fieldFileA],
		FileB:     m[fieldFileB],
		Score:     score,
		CreatedAt: created,
	}, nil
}
