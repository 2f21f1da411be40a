package bankresolver

import (
	"PoundsBosses/internal/core/ports"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Client resolves account holder names through the bank lookup provider.
// The registry refuses to save a destination whose holder name cannot be
// resolved, so this client sits on the add-bank-account path.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	log        zerolog.Logger
}

var _ ports.BankResolver = (*Client)(nil) // Ensure compliance

// NewClient creates a new bank resolver client.
func NewClient(baseURL, apiKey string, baseLogger *zerolog.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: baseLogger.With().Str("component", "bank_resolver").Logger(),
	}
}

type resolveResponse struct {
	Status string `json:"status"`
	Data   struct {
		AccountName   string `json:"account_name"`
		AccountNumber string `json:"account_number"`
	} `json:"data"`
}

// ResolveAccountName looks up the holder name for an account number at a
// bank. An unknown account resolves to an empty name, not an error.
func (c *Client) ResolveAccountName(ctx context.Context, accountNumber, bankCode string) (string, error) {
	query := url.Values{}
	query.Set("account_number", accountNumber)
	query.Set("bank_code", bankCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/api/v1/banks/resolve?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create resolve request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute resolve request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read resolve response: %w", err)
	}

	// The provider answers 422 for an account it cannot resolve.
	if resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusNotFound {
		c.log.Info().Str("bank_code", bankCode).Msg("Account name not resolvable")
		return "", nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("bank resolver error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var resolveResp resolveResponse
	if err := json.Unmarshal(bodyBytes, &resolveResp); err != nil {
		return "", fmt.Errorf("failed to decode resolve response: %w", err)
	}
	return resolveResp.Data.AccountName, nil
}
