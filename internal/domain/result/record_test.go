package result

import (
	"math"
	"testing"
	"time"
)

func validRecord() Record {
	return Record{
		ID:        "r1",
		FileA:     "a.txt",
		FileB:     "b.pdf",
		Score:     0.5,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validRecord().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Record)
	}{
		{"missing id", func(r *Record) { r.ID = "" }},
		{"missing file a", func(r *Record) { r.FileA = "" }},
		{"missing file b", func(r *Record) { r.FileB = "" }},
		{"negative score", func(r *Record) { r.Score = -0.1 }},
		{"score above one", func(r *Record) { r.Score = 1.01 }},
		{"nan score", func(r *Record) { r.Score = math.NaN() }},
		{"zero time", func(r *Record) { r.CreatedAt = time.Time{} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := validRecord()
			tc.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPercent(t *testing.T) {
	r := validRecord()
	r.Score = 0.87499
	if got := r.Percent(); got != "87.50%" {
		t.Errorf("Percent() = %q, want %q", got, "87.50%")
	}
}
