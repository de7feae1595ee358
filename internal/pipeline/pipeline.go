// Package pipeline compares two documents: extract, normalize, vectorize, score.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/docsim/internal/domain"
	"github.com/kailas-cloud/docsim/internal/domain/document"
	"github.com/kailas-cloud/docsim/internal/extract"
	"github.com/kailas-cloud/docsim/internal/similarity"
	"github.com/kailas-cloud/docsim/internal/textnorm"
)

// Extractor turns a document into raw text.
type Extractor interface {
	Extract(doc document.Document) (string, error)
}

// Report describes one comparison.
type Report struct {
	Score      similarity.Score
	TokensA    int
	TokensB    int
	Vocabulary int
	Shared     int
}

// Pipeline is stateless between calls; one instance may serve concurrent comparisons.
type Pipeline struct {
	extractor  Extractor
	vectorizer *similarity.Vectorizer
}

// New creates a pipeline with the built-in extractors.
func New(opts similarity.Options) *Pipeline {
	return NewWithExtractor(extract.New(), opts)
}

// NewWithExtractor creates a pipeline with a custom extractor.
func NewWithExtractor(ex Extractor, opts similarity.Options) *Pipeline {
	return &Pipeline{extractor: ex, vectorizer: similarity.NewVectorizer(opts)}
}

// Compare returns the similarity of a and b.
func (p *Pipeline) Compare(a, b document.Document) (similarity.Score, error) {
	r, err := p.CompareDetailed(a, b)
	if err != nil {
		return 0, err
	}
	return r.Score, nil
}

// CompareDetailed is Compare with token and vocabulary statistics. The first failing
// step aborts the comparison; its error is returned with the kind preserved.
func (p *Pipeline) CompareDetailed(a, b document.Document) (Report, error) {
	rawA, err := p.extractor.Extract(a)
	if err != nil {
		return Report{}, err
	}
	rawB, err := p.extractor.Extract(b)
	if err != nil {
		return Report{}, err
	}

	textA := textnorm.Normalize(rawA)
	textB := textnorm.Normalize(rawB)

	vecA, vecB, fs, err := p.vectorizer.Vectorize(textA, textB)
	if err != nil {
		return Report{}, nameEmpty(err, a.Name(), b.Name())
	}

	score, err := similarity.Cosine(vecA, vecB)
	if err != nil {
		return Report{}, fmt.Errorf("score: %w", err)
	}

	return Report{
		Score:      score,
		TokensA:    fs.Tokens[0],
		TokensB:    fs.Tokens[1],
		Vocabulary: fs.Dimension(),
		Shared:     fs.Shared,
	}, nil
}

// nameEmpty replaces the positional "a"/"b" markers of an EmptyDocumentError with the
// document names.
func nameEmpty(err error, nameA, nameB string) error {
	var ede *domain.EmptyDocumentError
	if !errors.As(err, &ede) {
		return err
	}
	names := make([]string, 0, len(ede.Documents))
	for _, d := range ede.Documents {
		switch d {
		case "a":
			names = append(names, nameA)
		case "b":
			names = append(names, nameB)
		default:
			names = append(names, d)
		}
	}
	return &domain.EmptyDocumentError{Documents: names}
}
