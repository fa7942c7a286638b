package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"apikey-validator/internal/clients"
	"apikey-validator/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(baseURL string, skipTLS bool) *config.Config {
	cfg := &config.Config{}
	cfg.Validator.RequestTimeout = 5 * time.Second
	cfg.API.SkipTLSVerify = skipTLS
	cfg.SetBaseURL(baseURL)
	return cfg
}

func newValidator(cfg *config.Config) *KeyValidator {
	return NewKeyValidator(cfg, clients.NewLookoutClient(cfg))
}

// validationServer fakes the token and devices endpoints. Behavior is keyed
// on the bearer credential so one server can serve several scenarios.
func validationServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer good-key":
			w.Write([]byte(`{"access_token":"tok-good","token_type":"Bearer","expires_in":3600,"scope":"mra.read"}`))
		case "Bearer probe-fail-key":
			w.Write([]byte(`{"access_token":"tok-forbidden","token_type":"Bearer","expires_in":900}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid_client"}`))
		}
	})
	mux.HandleFunc("/mra/api/v2/devices", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer tok-good":
			w.Write([]byte(`{"count":7}`))
		default:
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("insufficient scope"))
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestKeyValidator_ValidateKey_Success(t *testing.T) {
	server := validationServer(t)
	validator := newValidator(newTestConfig(server.URL, false))

	result := validator.ValidateKey(context.Background(), "good-key", "")

	assert.True(t, result.Valid)
	assert.True(t, result.TokenObtained)
	assert.True(t, result.APIAccessible)
	assert.False(t, result.SSLVerifySkipped)
	assert.Empty(t, result.Errors)

	require.NotNil(t, result.TokenInfo)
	assert.Equal(t, "Bearer", result.TokenInfo.TokenType)
	assert.Equal(t, int64(3600), result.TokenInfo.ExpiresIn)
	assert.Equal(t, "mra.read", result.TokenInfo.Scope)

	require.NotNil(t, result.APIInfo)
	assert.Equal(t, 7, result.APIInfo.DeviceCount)
	assert.True(t, result.APIInfo.APIAccessible)
}

func TestKeyValidator_ValidateKey_TokenPhaseFailure(t *testing.T) {
	server := validationServer(t)
	validator := newValidator(newTestConfig(server.URL, false))

	result := validator.ValidateKey(context.Background(), "wrong-key", "")

	assert.False(t, result.Valid)
	assert.False(t, result.TokenObtained)
	assert.False(t, result.APIAccessible)
	assert.Nil(t, result.TokenInfo)
	assert.Nil(t, result.APIInfo)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Token request failed: HTTP 401", result.Errors[0])
}

func TestKeyValidator_ValidateKey_ProbePhaseFailure(t *testing.T) {
	server := validationServer(t)
	validator := newValidator(newTestConfig(server.URL, false))

	result := validator.ValidateKey(context.Background(), "probe-fail-key", "")

	assert.False(t, result.Valid)
	assert.True(t, result.TokenObtained)
	assert.False(t, result.APIAccessible)

	require.NotNil(t, result.TokenInfo)
	assert.Equal(t, int64(900), result.TokenInfo.ExpiresIn)
	assert.Nil(t, result.APIInfo)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "API access failed: HTTP 403", result.Errors[0])
}

func TestKeyValidator_ValidateKey_NetworkFailure(t *testing.T) {
	server := validationServer(t)
	url := server.URL
	server.Close()

	validator := newValidator(newTestConfig(url, false))
	result := validator.ValidateKey(context.Background(), "good-key", "")

	assert.False(t, result.Valid)
	assert.False(t, result.TokenObtained)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Token request failed: Network error", result.Errors[0])
}

func TestKeyValidator_ValidateKey_RedactsLongKey(t *testing.T) {
	server := validationServer(t)
	validator := newValidator(newTestConfig(server.URL, true))

	longKey := strings.Repeat("x", 40)
	result := validator.ValidateKey(context.Background(), longKey, "")

	assert.Equal(t, strings.Repeat("x", 20)+"...", result.ApplicationKey)
	assert.True(t, result.SSLVerifySkipped)
}

func TestKeyValidator_ValidateKey_Invariant(t *testing.T) {
	server := validationServer(t)
	validator := newValidator(newTestConfig(server.URL, false))

	for _, key := range []string{"good-key", "wrong-key", "probe-fail-key"} {
		result := validator.ValidateKey(context.Background(), key, "")
		assert.Equal(t, result.TokenObtained && result.APIAccessible, result.Valid, "key %s", key)
		assert.Equal(t, !result.Valid, len(result.Errors) > 0, "key %s", key)
	}
}
