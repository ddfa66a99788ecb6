package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cyync-lookup/internal/domain"
)

// ErrorCode classifies API errors for clients.
type ErrorCode string

// API error codes.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeUpstreamError    ErrorCode = "upstream_error"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// Status is the remote CYYNC status when the failure came from upstream.
	Status int `json:"status,omitempty"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

var errorHandlers = []errorHandler{
	sentinelHandler(domain.ErrInvalidOptions, http.StatusBadRequest, CodeValidationFailed),
	sentinelHandler(domain.ErrUnknownScope, http.StatusBadRequest, CodeValidationFailed),
	transportHandler,
}

func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

// transportHandler surfaces remote failures as 502 with the readable lookup detail.
func transportHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrTransport) {
		return false
	}
	le := domain.NewLookupError(err)
	writeJSON(w, http.StatusBadGateway, ErrorResponse{
		Code:    CodeUpstreamError,
		Message: le.Detail,
		Status:  le.Status,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.requestLogger(r)
	log.Warn("lookup error", zap.Error(err))
	if s.handled(w, err) {
		return
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, domain.DefaultLookupDetail)
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
