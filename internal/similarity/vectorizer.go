package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/docsim/internal/domain"
	"github.com/kailas-cloud/docsim/internal/textnorm"
)

// corpusSize is the number of documents in every feature space.
const corpusSize = 2

// Options tune tokenization.
type Options struct {
	// MinTokenLength drops tokens shorter than this many runes. Values below 1 mean 1.
	MinTokenLength int
}

// DefaultOptions keeps every token.
func DefaultOptions() Options {
	return Options{MinTokenLength: 1}
}

// Vector is a dense TF-IDF vector over a FeatureSpace vocabulary.
type Vector []float64

// FeatureSpace is the sorted vocabulary and IDF weights of exactly two documents.
type FeatureSpace struct {
	Terms []string
	IDF   []float64
	// Shared counts terms that occur in both documents.
	Shared int
	// Tokens holds the token count of each document.
	Tokens [corpusSize]int
}

// Dimension returns the vocabulary size.
func (fs *FeatureSpace) Dimension() int { return len(fs.Terms) }

// Vectorizer turns a pair of normalized texts into TF-IDF vectors. It holds no state
// between calls and is safe for concurrent use.
type Vectorizer struct {
	minLen int
}

// NewVectorizer creates a Vectorizer.
func NewVectorizer(opts Options) *Vectorizer {
	minLen := opts.MinTokenLength
	if minLen < 1 {
		minLen = 1
	}
	return &Vectorizer{minLen: minLen}
}

// Tokenize splits text on non-word boundaries and drops short tokens.
func (v *Vectorizer) Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool { return !textnorm.IsWordRune(r) })
	if v.minLen <= 1 {
		return fields
	}
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= v.minLen {
			out = append(out, f)
		}
	}
	return out
}

// Vectorize builds the feature space of a and b and returns one L2-normalized vector per
// text. Both vectors have the vocabulary's dimension. If either text yields no tokens it
// returns an *domain.EmptyDocumentError naming "a", "b" or both.
func (v *Vectorizer) Vectorize(a, b string) (Vector, Vector, *FeatureSpace, error) {
	tokensA := v.Tokenize(a)
	tokensB := v.Tokenize(b)

	var empty []string
	if len(tokensA) == 0 {
		empty = append(empty, "a")
	}
	if len(tokensB) == 0 {
		empty = append(empty, "b")
	}
	if len(empty) > 0 {
		return nil, nil, nil, &domain.EmptyDocumentError{Documents: empty}
	}

	countsA := countTerms(tokensA)
	countsB := countTerms(tokensB)

	// Document frequencies
	df := make(map[string]int, len(countsA)+len(countsB))
	for term := range countsA {
		df[term]++
	}
	for term := range countsB {
		df[term]++
	}

	// Stable ordering for reproducible scores
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	fs := &FeatureSpace{
		Terms:  terms,
		IDF:    make([]float64, len(terms)),
		Tokens: [corpusSize]int{len(tokensA), len(tokensB)},
	}
	index := make(map[string]int, len(terms))
	n := float64(corpusSize)
	for i, term := range terms {
		index[term] = i
		// Smoothed IDF: a term in both documents weighs 1, a term in one weighs ln(1.5)+1.
		fs.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
		if df[term] == corpusSize {
			fs.Shared++
		}
	}

	return fs.weigh(countsA, len(tokensA), index), fs.weigh(countsB, len(tokensB), index), fs, nil
}

func (fs *FeatureSpace) weigh(counts map[string]int, total int, index map[string]int) Vector {
	vec := make(Vector, len(fs.Terms))
	for term, count := range counts {
		idx := index[term]
		tf := float64(count) / float64(total)
		vec[idx] = tf * fs.IDF[idx]
	}
	// L2 normalize
	norm := vec.Norm()
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// Norm returns the Euclidean norm of v.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func countTerms(tokens []string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}
	return counts
}
