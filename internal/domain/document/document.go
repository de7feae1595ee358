package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/docsim/internal/domain"
)

// Format is the declared format tag of a document.
type Format string

// Supported formats.
const (
	FormatPlainText Format = "plain-text"
	FormatPDF       Format = "pdf"
	FormatWordXML   Format = "word-processor-xml"
)

var extensions = map[string]Format{
	".txt":  FormatPlainText,
	".pdf":  FormatPDF,
	".docx": FormatWordXML,
}

// FormatFromExtension resolves a format tag from a file extension (".pdf", "PDF").
func FormatFromExtension(ext string) (Format, error) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	f, ok := extensions[ext]
	if !ok {
		return "", domain.NewUnsupportedFormat(ext)
	}
	return f, nil
}

// FormatFromName resolves a format tag from a file name.
func FormatFromName(name string) (Format, error) {
	return FormatFromExtension(filepath.Ext(name))
}

// Payload supplies document content on demand.
type Payload interface {
	Bytes() ([]byte, error)
}

// Bytes is an in-memory payload.
type Bytes []byte

// Bytes returns the content as is.
func (b Bytes) Bytes() ([]byte, error) { return b, nil }

// File is a payload read from disk on first use.
type File string

// Bytes reads the file.
func (f File) Bytes() ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(string(f)))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", string(f), err)
	}
	return data, nil
}

// Document is an uploaded file: a name, a format tag and an opaque payload (immutable value object).
type Document struct {
	name    string
	format  Format
	payload Payload
}

// New creates a Document. The format is not validated here; extraction rejects unknown tags.
func New(name string, format Format, payload Payload) Document {
	if payload == nil {
		payload = Bytes(nil)
	}
	return Document{name: name, format: format, payload: payload}
}

// FromBytes creates an in-memory Document whose format is resolved from name.
func FromBytes(name string, content []byte) (Document, error) {
	f, err := FormatFromName(name)
	if err != nil {
		return Document{}, err
	}
	return New(name, f, Bytes(content)), nil
}

// FromFile creates a Document backed by the file at path. The file is not opened until
// its content is needed.
func FromFile(path string) (Document, error) {
	f, err := FormatFromName(path)
	if err != nil {
		return Document{}, err
	}
	return New(filepath.Base(path), f, File(path)), nil
}

// Name returns the document identifier (usually the original file name).
func (d Document) Name() string { return d.name }

// Format returns the declared format tag.
func (d Document) Format() Format { return d.format }

// Content reads the payload.
func (d Document) Content() ([]byte, error) {
	if d.payload == nil {
		return nil, nil
	}
	data, err := d.payload.Bytes()
	if err != nil {
		return nil, fmt.Errorf("read document %q: %w", d.name, err)
	}
	return data, nil
}
