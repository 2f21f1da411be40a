package paygate

import (
	"PoundsBosses/internal/core/ports"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client calls the payment provider's verification endpoint. Funding is
// only ever credited off a reference this endpoint confirms.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	log        zerolog.Logger
}

var _ ports.PaymentGateway = (*Client)(nil) // Ensure compliance

// NewClient creates a new payment gateway client.
func NewClient(baseURL, apiKey string, baseLogger *zerolog.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: baseLogger.With().Str("component", "payment_gateway").Logger(),
	}
}

type verifyPaymentRequest struct {
	TransactionRef string `json:"transaction_ref"`
	UserID         string `json:"user_id"`
}

type verifyPaymentResponse struct {
	Status string `json:"status"`
	Data   struct {
		Success       bool   `json:"success"`
		TransactionID string `json:"transaction_id"`
	} `json:"data"`
}

// ErrorResponse represents an error payload from the provider.
type ErrorResponse struct {
	StatusCode int
	Message    string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("payment gateway error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("payment gateway error (%d)", e.StatusCode)
}

// VerifyPayment asks the provider whether a transaction reference has
// settled. A declined reference is not an error; the verdict carries it.
func (c *Client) VerifyPayment(ctx context.Context, txRef, userID string) (*ports.PaymentVerification, error) {
	body, err := json.Marshal(verifyPaymentRequest{TransactionRef: txRef, UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/v1/payments/verify", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute verify request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read verify response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errResp := &ErrorResponse{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(bodyBytes, errResp); err != nil {
			errResp.Message = string(bodyBytes)
		}
		c.log.Warn().Int("status", resp.StatusCode).Str("tx_ref", txRef).Msg("Verify request rejected by provider")
		return nil, errResp
	}

	var verifyResp verifyPaymentResponse
	if err := json.Unmarshal(bodyBytes, &verifyResp); err != nil {
		return nil, fmt.Errorf("failed to decode verify response: %w", err)
	}

	return &ports.PaymentVerification{
		Success:       verifyResp.Data.Success,
		TransactionID: verifyResp.Data.TransactionID,
	}, nil
}
