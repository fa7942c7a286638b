package clients

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"apikey-validator/internal/config"
	"apikey-validator/internal/models"

	"github.com/rs/zerolog/log"
)

// LookoutClient talks to the Lookout Mobile Risk API. It owns a single
// http.Client configured once per run; when TLS verification is skipped the
// transport is built insecure here and nowhere else.
type LookoutClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

// NewLookoutClient creates a client for the configured API endpoints.
func NewLookoutClient(cfg *config.Config) *LookoutClient {
	return &LookoutClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Validator.RequestTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: cfg.API.SkipTLSVerify,
				},
			},
		},
	}
}

// devicesPage is the subset of the device listing body the probe reads.
// The count field defaults to zero when absent.
type devicesPage struct {
	Count int `json:"count"`
}

// RequestAccessToken exchanges an application key for an OAuth2 access
// token using the client_credentials grant. A non-200 response or a
// transport failure is returned as a PhaseError; neither is fatal to a
// multi-key run.
func (c *LookoutClient) RequestAccessToken(ctx context.Context, applicationKey, scope string) (*models.TokenResponse, *models.PhaseError) {
	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	if scope != "" {
		data.Set("scope", scope)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.API.TokenEndpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, models.NewNetworkError(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+applicationKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, models.NewNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, models.NewHTTPError(resp.StatusCode, string(body))
	}

	var token models.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, models.NewNetworkError(err)
	}

	log.Debug().
		Str("token_type", token.TokenType).
		Int64("expires_in", token.ExpiresIn).
		Msg("Access token obtained")

	return &token, nil
}

// TestAPIAccess issues one authenticated call against the device listing
// endpoint to confirm the token is usable. limit=1 keeps the response
// minimal; the endpoint serves purely as a reachability probe.
func (c *LookoutClient) TestAPIAccess(ctx context.Context, accessToken string) (*models.APIInfo, *models.PhaseError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.API.TestEndpoint, nil)
	if err != nil {
		return nil, models.NewNetworkError(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	q := req.URL.Query()
	q.Set("limit", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, models.NewNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, models.NewHTTPError(resp.StatusCode, string(body))
	}

	var page devicesPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, models.NewNetworkError(err)
	}

	return &models.APIInfo{
		DeviceCount:   page.Count,
		APIAccessible: true,
	}, nil
}
