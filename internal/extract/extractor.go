// Package extract converts uploaded documents into raw text.
package extract

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/docsim/internal/domain"
	"github.com/kailas-cloud/docsim/internal/domain/document"
)

// formatExtractor turns the content of one format into text.
// Returned errors are wrapped into a domain.ExtractionError by Extract.
type formatExtractor func(content []byte) (string, error)

// kindError carries the failure kind (domain.ErrDecode or domain.ErrParse) out of a
// formatExtractor.
type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string { return e.err.Error() }
func (e *kindError) Unwrap() error { return e.err }

func decodeErr(format string, args ...any) error {
	return &kindError{kind: domain.ErrDecode, err: fmt.Errorf(format, args...)}
}

func parseErr(format string, args ...any) error {
	return &kindError{kind: domain.ErrParse, err: fmt.Errorf(format, args...)}
}

// Extractor dispatches on the document format tag. It has no state and is safe for
// concurrent use.
type Extractor struct {
	byFormat map[document.Format]formatExtractor
}

// New creates an Extractor for plain text, PDF and DOCX documents.
func New() *Extractor {
	return &Extractor{
		byFormat: map[document.Format]formatExtractor{
			document.FormatPlainText: extractPlain,
			document.FormatPDF:       extractPDF,
			document.FormatWordXML:   extractDOCX,
		},
	}
}

// Extract returns the raw text of doc. An unknown format fails with
// *domain.UnsupportedFormatError before the payload is read. Content failures are
// reported as *domain.ExtractionError of kind domain.ErrDecode or domain.ErrParse.
func (e *Extractor) Extract(doc document.Document) (string, error) {
	fn, ok := e.byFormat[doc.Format()]
	if !ok {
		return "", domain.NewUnsupportedFormat(string(doc.Format()))
	}

	content, err := doc.Content()
	if err != nil {
		return "", err
	}

	text, err := fn(content)
	if err != nil {
		kind := domain.ErrParse
		var ke *kindError
		if errors.As(err, &ke) {
			kind = ke.kind
			err = ke.err
		}
		return "", &domain.ExtractionError{
			Document: doc.Name(),
			Format:   string(doc.Format()),
			Kind:     kind,
			Err:      err,
		}
	}
	return text, nil
}
