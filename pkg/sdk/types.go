package docsim

import (
	"time"

	"github.com/kailas-cloud/docsim/internal/domain/document"
	"github.com/kailas-cloud/docsim/internal/domain/result"
	checkuc "github.com/kailas-cloud/docsim/internal/usecase/check"
)

// Format is a document format tag.
type Format = document.Format

// Supported formats.
const (
	FormatPlainText = document.FormatPlainText
	FormatPDF       = document.FormatPDF
	FormatWordXML   = document.FormatWordXML
)

// Document is a named payload to compare.
type Document struct {
	doc document.Document
}

// Name returns the document identifier.
func (d Document) Name() string { return d.doc.Name() }

// Format returns the declared format tag.
func (d Document) Format() Format { return d.doc.Format() }

// NewDocument wraps in-memory content with an explicit format tag. The tag is
// checked when the document is compared.
func NewDocument(name string, format Format, content []byte) Document {
	return Document{doc: document.New(name, format, document.Bytes(content))}
}

// FromBytes wraps in-memory content; the format is taken from the name's extension.
func FromBytes(name string, content []byte) (Document, error) {
	d, err := document.FromBytes(name, content)
	if err != nil {
		return Document{}, err //nolint:wrapcheck // domain errors are re-exported as is
	}
	return Document{doc: d}, nil
}

// FromFile references a file on disk; it is read when the document is compared.
func FromFile(path string) (Document, error) {
	d, err := document.FromFile(path)
	if err != nil {
		return Document{}, err //nolint:wrapcheck // domain errors are re-exported as is
	}
	return Document{doc: d}, nil
}

// Record is a stored comparison.
type Record struct {
	ID        string
	FileA     string
	FileB     string
	Score     float64
	Percent   string
	CreatedAt time.Time
}

// Comparison is the outcome of Compare.
type Comparison struct {
	Record
	// Persisted is false when history is disabled or the save failed.
	Persisted  bool
	TokensA    int
	TokensB    int
	Vocabulary int
	Shared     int
}

func recordFromDomain(r result.Record) Record {
	return Record{
		ID:        r.ID,
		FileA:     r.FileA,
		FileB:     r.FileB,
		Score:     r.Score,
		Percent:   r.Percent(),
		CreatedAt: r.CreatedAt,
	}
}

func comparisonFromResult(res checkuc.Result) Comparison {
	return Comparison{
		Record:     recordFromDomain(res.Record),
		Persisted:  res.Persisted,
		TokensA:    res.Report.TokensA,
		TokensB:    res.Report.TokensB,
		Vocabulary: res.Report.Vocabulary,
		Shared:     res.Report.Shared,
	}
}
