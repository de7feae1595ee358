package docsim

import "github.com/kailas-cloud/docsim/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrUnsupportedFormat = domain.ErrUnsupportedFormat
	ErrDecode            = domain.ErrDecode
	ErrParse             = domain.ErrParse
	ErrEmptyDocument     = domain.ErrEmptyDocument
	ErrNotFound          = domain.ErrNotFound
	ErrHistoryDisabled   = domain.ErrHistoryDisabled
	ErrSetup             = domain.ErrSetup
)

// Typed errors carrying the failing document or format. Use errors.As() to inspect.
type (
	UnsupportedFormatError = domain.UnsupportedFormatError
	ExtractionError        = domain.ExtractionError
	EmptyDocumentError     = domain.EmptyDocumentError
)
