// Package report renders run summaries for the console and persists
// results as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"apikey-validator/internal/models"

	"github.com/rs/zerolog/log"
)

// WriteSummary renders the human-readable validation summary.
func WriteSummary(w io.Writer, summary *models.RunSummary) {
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w, "VALIDATION SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Valid keys:   %d/%d\n", summary.Valid, summary.Total)
	fmt.Fprintf(w, "Invalid keys: %d/%d\n", summary.Invalid, summary.Total)

	if len(summary.Results) > 0 && summary.Results[0].SSLVerifySkipped {
		fmt.Fprintln(w, "WARNING: TLS certificate verification was disabled for all requests")
	}

	failed := summary.Failed()
	if len(failed) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Failed validations:")
	for _, r := range failed {
		fmt.Fprintf(w, "  - %s: %s\n", r.ApplicationKey, strings.Join(r.Errors, ", "))
	}
}

// SaveJSON writes the per-key results verbatim as indented JSON.
func SaveJSON(path string, summary *models.RunSummary) error {
	data, err := json.MarshalIndent(summary.Results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write results file %s: %w", path, err)
	}

	log.Info().Str("path", path).Int("results", len(summary.Results)).Msg("Results saved")
	return nil
}
