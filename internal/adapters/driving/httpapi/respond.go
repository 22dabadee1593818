package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/developertarun01/weyfar-cli/internal/core/domain"
	"github.com/developertarun01/weyfar-cli/internal/logger"
)

// envelope wraps every API response.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encode response: %v", err)
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		logger.Warn("HTTP %d: %v", status, err)
	}
	writeJSON(w, status, envelope{Error: &errorBody{Code: code, Message: validationMessage(err)}})
}

// classify maps domain errors to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidSearchKind), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, domain.ErrorCodeInvalidRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, domain.ErrorCodeRateLimited
	case errors.Is(err, domain.ErrSearchUnavailable), errors.Is(err, domain.ErrMissingCredentials):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusBadGateway, domain.ErrorCodeRemoteFailure
	}
}
