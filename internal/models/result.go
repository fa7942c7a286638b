package models

import (
	"time"

	"github.com/google/uuid"
)

// ValidationResult records the outcome of validating one application key.
// It is built up during the two validation phases and must not be mutated
// after the validator returns it.
type ValidationResult struct {
	ApplicationKey   string     `json:"application_key"`
	Timestamp        string     `json:"timestamp"`
	Valid            bool       `json:"valid"`
	TokenObtained    bool       `json:"token_obtained"`
	APIAccessible    bool       `json:"api_accessible"`
	SSLVerifySkipped bool       `json:"ssl_verify_skipped"`
	Errors           []string   `json:"errors"`
	TokenInfo        *TokenInfo `json:"token_info,omitempty"`
	APIInfo          *APIInfo   `json:"api_info,omitempty"`
}

// TokenInfo carries token metadata returned by the OAuth2 endpoint.
// Fields absent from the response keep their zero value.
type TokenInfo struct {
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
	Scope     string `json:"scope"`
}

// APIInfo carries the probe payload from the devices endpoint.
type APIInfo struct {
	DeviceCount   int  `json:"device_count"`
	APIAccessible bool `json:"api_accessible"`
}

// NewValidationResult builds the skeleton record for one key attempt.
func NewValidationResult(key string, sslVerifySkipped bool) *ValidationResult {
	return &ValidationResult{
		ApplicationKey:   RedactKey(key),
		Timestamp:        time.Now().Format(time.RFC3339),
		SSLVerifySkipped: sslVerifySkipped,
		Errors:           []string{},
	}
}

// redactKeyLen is the number of key characters shown in output. This is a
// display truncation, not a security control: the full key is still sent on
// the wire and is never written to the results file.
const redactKeyLen = 20

// RedactKey returns the key verbatim when it fits within the display limit,
// otherwise the first 20 characters followed by an ellipsis.
func RedactKey(key string) string {
	if len(key) > redactKeyLen {
		return key[:redactKeyLen] + "..."
	}
	return key
}

// TokenResponse is the parsed body of a successful token request.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	ExpiresAt   int64  `json:"expires_at"`
	Scope       string `json:"scope"`
}

// RunSummary aggregates the results of one validation run.
type RunSummary struct {
	RunID     uuid.UUID           `json:"run_id"`
	StartedAt time.Time           `json:"started_at"`
	Total     int                 `json:"total"`
	Valid     int                 `json:"valid"`
	Invalid   int                 `json:"invalid"`
	Results   []*ValidationResult `json:"results"`
}

// NewRunSummary creates an empty summary stamped with a fresh run ID.
func NewRunSummary() *RunSummary {
	return &RunSummary{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
		Results:   []*ValidationResult{},
	}
}

// Add appends a result and updates the aggregate counts.
func (s *RunSummary) Add(result *ValidationResult) {
	s.Results = append(s.Results, result)
	s.Total++
	if result.Valid {
		s.Valid++
	} else {
		s.Invalid++
	}
}

// AllValid reports whether every key in the run validated successfully.
func (s *RunSummary) AllValid() bool {
	return s.Invalid == 0
}

// Failed returns the results that did not validate, in input order.
func (s *RunSummary) Failed() []*ValidationResult {
	failed := make([]*ValidationResult, 0)
	for _, r := range s.Results {
		if !r.Valid {
			failed = append(failed, r)
		}
	}
	return failed
}
