package services

import (
	"context"
	"time"

	"apikey-validator/internal/config"
	"apikey-validator/internal/models"

	"github.com/rs/zerolog/log"
)

// BatchRunner validates a sequence of application keys strictly in input
// order, one at a time, with a fixed pause between consecutive keys.
type BatchRunner struct {
	cfg       *config.Config
	validator *KeyValidator
}

// NewBatchRunner creates a runner around the given validator.
func NewBatchRunner(cfg *config.Config, validator *KeyValidator) *BatchRunner {
	return &BatchRunner{
		cfg:       cfg,
		validator: validator,
	}
}

// Run validates every key and returns the aggregated summary. The pause is
// inserted only between consecutive keys, not before the first or after the
// last. Cancelling the context stops the run before the next key.
func (r *BatchRunner) Run(ctx context.Context, keys []string) *models.RunSummary {
	summary := models.NewRunSummary()

	log.Info().
		Str("run_id", summary.RunID.String()).
		Int("keys", len(keys)).
		Str("base_url", r.cfg.API.BaseURL).
		Msg("Starting validation run")

	for i, key := range keys {
		if i > 0 && r.cfg.Validator.PauseBetweenKeys > 0 {
			select {
			case <-ctx.Done():
				log.Warn().Int("remaining", len(keys)-i).Msg("Validation run cancelled")
				return summary
			case <-time.After(r.cfg.Validator.PauseBetweenKeys):
			}
		}

		select {
		case <-ctx.Done():
			log.Warn().Int("remaining", len(keys)-i).Msg("Validation run cancelled")
			return summary
		default:
		}

		if len(keys) > 1 {
			log.Info().Int("current", i+1).Int("total", len(keys)).Msg("Validating key")
		}

		summary.Add(r.validator.ValidateKey(ctx, key, r.cfg.Validator.Scope))
	}

	log.Info().
		Str("run_id", summary.RunID.String()).
		Int("valid", summary.Valid).
		Int("invalid", summary.Invalid).
		Msg("Validation run finished")

	return summary
}
