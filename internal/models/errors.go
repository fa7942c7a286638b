package models

import "fmt"

// PhaseError describes a failed validation phase. Kind is "HTTP <status>"
// for non-200 responses and "Network error" for transport failures, in
// which case StatusCode is zero.
type PhaseError struct {
	Kind       string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
}

func (e *PhaseError) Error() string {
	if e.Message == "" {
		return e.Kind
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewHTTPError builds a PhaseError for a non-200 response.
func NewHTTPError(statusCode int, body string) *PhaseError {
	return &PhaseError{
		Kind:       fmt.Sprintf("HTTP %d", statusCode),
		Message:    body,
		StatusCode: statusCode,
	}
}

// NewNetworkError builds a PhaseError for a transport-level failure
// (DNS, connection refused, timeout, TLS).
func NewNetworkError(err error) *PhaseError {
	return &PhaseError{
		Kind:    "Network error",
		Message: err.Error(),
	}
}
