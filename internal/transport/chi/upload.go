package chi

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/kailas-cloud/docsim/internal/domain/document"
)

var (
	errMissingFile  = errors.New("please upload two files")
	errBadUpload    = errors.New("malformed multipart upload")
	errFileTooLarge = errors.New("uploaded file too large")
)

// multipartMemory is the in-memory part of a parsed form; larger files spill to disk.
const multipartMemory = 8 << 20

// readUploads parses the file1 and file2 parts of a multipart request.
// The whole body is capped at two files' worth of maxFileBytes.
func readUploads(w http.ResponseWriter, r *http.Request, maxFileBytes int64) (document.Document, document.Document, error) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*maxFileBytes+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return document.Document{}, document.Document{}, errFileTooLarge
		}
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return document.Document{}, document.Document{}, errMissingFile
		}
		return document.Document{}, document.Document{}, fmt.Errorf("%w: %w", errBadUpload, err)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	a, err := readPart(r, "file1", maxFileBytes)
	if err != nil {
		return document.Document{}, document.Document{}, err
	}
	b, err := readPart(r, "file2", maxFileBytes)
	if err != nil {
		return document.Document{}, document.Document{}, err
	}
	return a, b, nil
}

func readPart(r *http.Request, field string, maxFileBytes int64) (document.Document, error) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return document.Document{}, errMissingFile
		}
		return document.Document{}, fmt.Errorf("%w: %s: %w", errBadUpload, field, err)
	}
	defer func() { _ = f.Close() }()

	name := filepath.Base(hdr.Filename)
	if name == "." || name == string(filepath.Separator) || hdr.Filename == "" {
		return document.Document{}, errMissingFile
	}
	if hdr.Size > maxFileBytes {
		return document.Document{}, errFileTooLarge
	}

	content, err := readAll(f, maxFileBytes)
	if err != nil {
		return document.Document{}, err
	}
	// Unsupported extensions surface as domain.ErrUnsupportedFormat.
	return document.FromBytes(name, content)
}

func readAll(f multipart.File, maxFileBytes int64) ([]byte, error) {
	content, err := io.ReadAll(io.LimitReader(f, maxFileBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadUpload, err)
	}
	if int64(len(content)) > maxFileBytes {
		return nil, errFileTooLarge
	}
	return content, nil
}
