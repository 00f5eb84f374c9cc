package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vietddude/ramp/internal/core/domain"
	"github.com/vietddude/ramp/internal/status"
)

const (
	codeValidation         = "VALIDATION_ERROR"
	codeMissingReferenceID = "MISSING_REFERENCE_ID"
	codeInvalidReferenceID = "INVALID_REFERENCE_ID_FORMAT"
	codeOrderNotFound      = "ORDER_NOT_FOUND"
	codeUnknownReferenceID = "INVALID_REFERENCE_ID"
	codeAuth               = "ROBINHOOD_AUTH_ERROR"
	codeAPI                = "ROBINHOOD_API_ERROR"
	codeNetwork            = "NETWORK_ERROR"
	codeNotReady           = "REGISTRY_NOT_READY"
	codeRateLimited        = "RATE_LIMITED"
	codeInternal           = "INTERNAL_ERROR"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, httpCode int, code, msg string) {
	writeJSON(w, httpCode, envelope{Error: msg, Code: code})
}

// classify maps an error to its HTTP status, code and client-facing message.
// Upstream failures keep distinct codes within the 500 and 503 statuses.
// Upstream bodies are never echoed.
func classify(err error) (int, string, string) {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, status.ErrMissingReferenceID):
		return http.StatusBadRequest, codeMissingReferenceID, status.ErrMissingReferenceID.Message
	case errors.Is(err, status.ErrInvalidReferenceID):
		return http.StatusBadRequest, codeInvalidReferenceID, status.ErrInvalidReferenceID.Message
	case errors.As(err, &ve):
		return http.StatusBadRequest, codeValidation, ve.Message
	case errors.Is(err, domain.ErrNotReady):
		return http.StatusServiceUnavailable, codeNotReady, "Asset registry is still initializing"
	case errors.Is(err, domain.ErrUpstreamNotFound):
		return http.StatusNotFound, codeOrderNotFound, "Order not found. It may not be completed yet."
	case errors.Is(err, domain.ErrUpstreamAuth):
		return http.StatusInternalServerError, codeAuth, "Robinhood rejected the API credentials"
	case errors.Is(err, domain.ErrUpstreamServer), errors.Is(err, domain.ErrMalformedResponse):
		return http.StatusInternalServerError, codeAPI, "Robinhood API error"
	case errors.Is(err, domain.ErrUpstreamNetwork), errors.Is(err, domain.ErrUpstreamTimeout):
		return http.StatusServiceUnavailable, codeNetwork, "Unable to reach Robinhood, please retry"
	default:
		return http.StatusInternalServerError, codeInternal, "Internal server error"
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	httpCode, code, msg := classify(err)
	if httpCode >= http.StatusInternalServerError {
		s.log.Error("Request failed", "path", r.URL.Path, "code", code, "error", err)
	} else {
		s.log.Debug("Request rejected", "path", r.URL.Path, "code", code, "error", err)
	}
	writeFailure(w, httpCode, code, msg)
}
