package ml_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"comment-screener/internal/models"
)

// Client calls the remote toxicity model service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// PredictRequest is the body of a prediction call.
type PredictRequest struct {
	Text string `json:"text"`
}

// NewClient creates a client for the model service at baseURL.
// A zero timeout falls back to 30 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict asks the model for the toxicity probability of text. Any
// transport failure, non-2xx status, undecodable body, label other than 0 or
// 1, or probability outside [0, 1] is an error.
func (c *Client) Predict(ctx context.Context, text string) (*models.Prediction, error) {
	jsonData, err := json.Marshal(PredictRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("model service returned status %d: %s", resp.StatusCode, string(body))
	}

	var result models.Prediction
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if result.Label != 0 && result.Label != 1 {
		return nil, fmt.Errorf("model service returned invalid label %d", result.Label)
	}

	if math.IsNaN(result.Prob) || result.Prob < 0 || result.Prob > 1 {
		return nil, fmt.Errorf("model service returned invalid probability %v", result.Prob)
	}

	return &result, nil
}

// HealthCheck reports whether the model service answers on its docs route.
// The service exposes no dedicated health endpoint, so any 2xx is healthy.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/docs", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("model service returned status %d", resp.StatusCode)
	}
	return nil
}
