package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsim/internal/domain"
)

// ErrorCode is the machine-readable error identifier in JSON error bodies.
type ErrorCode string

// Error codes returned by the API.
const (
	CodeBadRequest        ErrorCode = "bad_request"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodeNotFound          ErrorCode = "not_found"
	CodeFileTooLarge      ErrorCode = "file_too_large"
	CodeUnsupportedFormat ErrorCode = "unsupported_format"
	CodeDecodeFailed      ErrorCode = "decode_failed"
	CodeParseFailed       ErrorCode = "parse_failed"
	CodeEmptyDocument     ErrorCode = "empty_document"
	CodeHistoryDisabled   ErrorCode = "history_disabled"
	CodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrUnsupportedFormat, http.StatusUnsupportedMediaType, CodeUnsupportedFormat),
		sentinelHandler(domain.ErrDecode, http.StatusUnprocessableEntity, CodeDecodeFailed),
		sentinelHandler(domain.ErrParse, http.StatusUnprocessableEntity, CodeParseFailed),
		sentinelHandler(domain.ErrEmptyDocument, http.StatusUnprocessableEntity, CodeEmptyDocument),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrHistoryDisabled, http.StatusNotImplemented, CodeHistoryDisabled),
		sentinelHandler(errMissingFile, http.StatusBadRequest, CodeBadRequest),
		sentinelHandler(errBadUpload, http.StatusBadRequest, CodeBadRequest),
		sentinelHandler(errFileTooLarge, http.StatusRequestEntityTooLarge, CodeFileTooLarge),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-facing message without exposing internals.
// Extraction failures name the document but not the parser error.
func safeDomainMessage(err error) string {
	var ufe *domain.UnsupportedFormatError
	if errors.As(err, &ufe) {
		return ufe.Error()
	}
	var ee *domain.ExtractionError
	if errors.As(err, &ee) {
		return fmt.Sprintf("%s: %s", ee.Kind.Error(), ee.Document)
	}
	var ede *domain.EmptyDocumentError
	if errors.As(err, &ede) {
		return ede.Error()
	}

	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrHistoryDisabled,
		errMissingFile,
		errBadUpload,
		errFileTooLarge,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
