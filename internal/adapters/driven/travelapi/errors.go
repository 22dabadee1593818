package travelapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/developertarun01/weyfar-cli/internal/core/domain"
)

// APIError is a non-2xx response from the travel API.
// It matches domain.ErrRemoteFailure, and domain.ErrRateLimited for 429.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("travel api: %d %s (%s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap exposes the domain errors this response maps to.
func (e *APIError) Unwrap() []error {
	if e.StatusCode == http.StatusTooManyRequests {
		return []error{domain.ErrRateLimited, domain.ErrRemoteFailure}
	}
	return []error{domain.ErrRemoteFailure}
}

// errorBody covers the error envelopes returned by the API.
type errorBody struct {
	Errors []struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// errorMessage extracts a human-readable message from an error response body.
func errorMessage(status int, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		for _, e := range eb.Errors {
			if e.Detail != "" {
				return e.Detail
			}
			if e.Title != "" {
				return e.Title
			}
		}
		for _, m := range []string{eb.Message, eb.ErrorDescription, eb.Error} {
			if m != "" {
				return m
			}
		}
		return http.StatusText(status)
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
		return text
	}
	return http.StatusText(status)
}
