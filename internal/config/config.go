package config

import (
	"os"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the production Lookout API host.
	DefaultBaseURL = "https://api.lookout.com"

	tokenPath = "/oauth2/token"
	testPath  = "/mra/api/v2/devices"
)

type Config struct {
	API       APIConfig       `json:"api"`
	Validator ValidatorConfig `json:"validator"`
}

type APIConfig struct {
	BaseURL       string `json:"base_url"`
	TokenEndpoint string `json:"token_endpoint"`
	TestEndpoint  string `json:"test_endpoint"`
	SkipTLSVerify bool   `json:"skip_tls_verify"`
}

type ValidatorConfig struct {
	RequestTimeout   time.Duration `json:"request_timeout"`
	PauseBetweenKeys time.Duration `json:"pause_between_keys"`
	Scope            string        `json:"scope"`
}

func NewConfig() *Config {
	cfg := &Config{
		API: APIConfig{
			SkipTLSVerify: getBoolEnv("LOOKOUT_SKIP_TLS_VERIFY", false),
		},
		Validator: ValidatorConfig{
			RequestTimeout:   getDurationEnv("VALIDATOR_REQUEST_TIMEOUT", 30*time.Second),
			PauseBetweenKeys: getDurationEnv("VALIDATOR_PAUSE_BETWEEN_KEYS", 1*time.Second),
			Scope:            getEnv("LOOKOUT_SCOPE", ""),
		},
	}
	cfg.SetBaseURL(getEnv("LOOKOUT_API_URL", DefaultBaseURL))
	return cfg
}

// SetBaseURL strips any trailing slash and re-derives the endpoint URLs.
func (c *Config) SetBaseURL(baseURL string) {
	base := strings.TrimRight(baseURL, "/")
	c.API.BaseURL = base
	c.API.TokenEndpoint = base + tokenPath
	c.API.TestEndpoint = base + testPath
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return fallback
}
