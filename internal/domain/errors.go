package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat signals a document format tag that has no extractor.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrDecode signals content that cannot be decoded as text for its declared format.
	ErrDecode = errors.New("decode failed")
	// ErrParse signals structurally malformed content (corrupt archive, broken PDF).
	ErrParse = errors.New("parse failed")
	// ErrEmptyDocument signals a document that normalizes to zero tokens.
	ErrEmptyDocument = errors.New("empty document")
	// ErrNotFound signals a missing comparison record.
	ErrNotFound = errors.New("not found")
	// ErrHistoryDisabled signals a history lookup while no result store is configured.
	ErrHistoryDisabled = errors.New("result history disabled")
	// ErrSetup signals a failed host initialization step (config, logger, result store).
	ErrSetup = errors.New("setup failed")
)

// UnsupportedFormatError names the rejected format tag or file extension.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedFormat.Error(), e.Format)
}

func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

// NewUnsupportedFormat creates an unsupported format error.
func NewUnsupportedFormat(format string) error {
	return &UnsupportedFormatError{Format: format}
}

// ExtractionError reports a failed extraction. Kind is ErrDecode or ErrParse.
type ExtractionError struct {
	Document string
	Format   string
	Kind     error
	Err      error
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("%s %q (%s)", e.Kind.Error(), e.Document, e.Format)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *ExtractionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// EmptyDocumentError lists the documents that produced no tokens.
type EmptyDocumentError struct {
	Documents []string
}

func (e *EmptyDocumentError) Error() string {
	if len(e.Documents) == 0 {
		return ErrEmptyDocument.Error()
	}
	return fmt.Sprintf("%s: %s", ErrEmptyDocument.Error(), strings.Join(e.Documents, ", "))
}

func (e *EmptyDocumentError) Unwrap() error { return ErrEmptyDocument }
