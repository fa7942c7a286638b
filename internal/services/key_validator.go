package services

import (
	"context"
	"fmt"

	"apikey-validator/internal/clients"
	"apikey-validator/internal/config"
	"apikey-validator/internal/models"

	"github.com/rs/zerolog/log"
)

// KeyValidator runs the two-step credential check for one application key:
// exchange the key for an OAuth2 access token, then probe the API with it.
// The pipeline is fail-fast: the probe phase is only reached after a token
// was obtained, and validation of a key stops at its first failing phase.
type KeyValidator struct {
	cfg    *config.Config
	client *clients.LookoutClient
}

// NewKeyValidator creates a validator using the given API client.
func NewKeyValidator(cfg *config.Config, client *clients.LookoutClient) *KeyValidator {
	return &KeyValidator{
		cfg:    cfg,
		client: client,
	}
}

// ValidateKey validates a single application key and returns its result.
// Failures are recorded on the result, never returned as errors: a bad key
// must not abort the rest of a batch.
func (v *KeyValidator) ValidateKey(ctx context.Context, applicationKey, scope string) *models.ValidationResult {
	result := models.NewValidationResult(applicationKey, v.cfg.API.SkipTLSVerify)

	log.Info().
		Str("key", result.ApplicationKey).
		Bool("tls_verify_skipped", result.SSLVerifySkipped).
		Msg("Validating application key")

	token, phaseErr := v.client.RequestAccessToken(ctx, applicationKey, scope)
	if phaseErr != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Token request failed: %s", phaseErr.Kind))
		log.Warn().
			Str("key", result.ApplicationKey).
			Str("reason", phaseErr.Error()).
			Msg("Token request failed")
		return result
	}

	result.TokenObtained = true
	result.TokenInfo = &models.TokenInfo{
		TokenType: token.TokenType,
		ExpiresIn: token.ExpiresIn,
		ExpiresAt: token.ExpiresAt,
		Scope:     token.Scope,
	}

	apiInfo, phaseErr := v.client.TestAPIAccess(ctx, token.AccessToken)
	if phaseErr != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("API access failed: %s", phaseErr.Kind))
		log.Warn().
			Str("key", result.ApplicationKey).
			Str("reason", phaseErr.Error()).
			Msg("API access failed")
		return result
	}

	result.APIAccessible = true
	result.APIInfo = apiInfo
	result.Valid = true

	log.Info().
		Str("key", result.ApplicationKey).
		Int("device_count", apiInfo.DeviceCount).
		Msg("Application key is valid")

	return result
}
