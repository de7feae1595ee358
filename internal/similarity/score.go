package similarity

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch signals vectors built over different feature spaces.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Score is a cosine similarity in [0, 1].
type Score float64

// Float64 returns the raw value.
func (s Score) Float64() float64 { return float64(s) }

// Percent renders the score with two decimals, e.g. "87.50%".
func (s Score) Percent() string {
	return fmt.Sprintf("%.2f%%", float64(s)*100)
}

// Cosine returns the cosine similarity of a and b. A zero vector on either side scores 0.
// The result is clamped to [0, 1] so rounding never leaves the range.
func Cosine(a, b Vector) (Score, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("cosine of %d and %d dims: %w", len(a), len(b), ErrDimensionMismatch)
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return clamp(dot / (math.Sqrt(normA) * math.Sqrt(normB))), nil
}

func clamp(v float64) Score {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return Score(v)
	}
}
