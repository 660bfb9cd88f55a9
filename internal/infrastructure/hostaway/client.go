package hostaway

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"reviews-backend/internal/config"
	"reviews-backend/pkg/logger"
)

//go:embed mock_reviews.json
var mockDataset []byte

// apiResponse is the Hostaway list envelope.
type apiResponse struct {
	Status string      `json:"status"`
	Result []RawReview `json:"result"`
}

// Client fetches raw reviews from the Hostaway API. On any upstream failure
// or an empty result it falls back to the embedded static dataset, so a sync
// always has data to work with. Single attempt, no retry.
type Client struct {
	baseURL    string
	accountID  string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg config.HostawayConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		accountID:  cfg.AccountID,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchReviews returns the raw review records, validated against the
// expected schema. Upstream failures are never surfaced to the caller;
// validation failures are.
func (c *Client) FetchReviews(ctx context.Context) ([]RawReview, error) {
	reviews, err := c.fetchFromAPI(ctx)
	if err != nil {
		logger.Warn("Hostaway fetch failed, using fallback dataset", map[string]interface{}{
			"reason": err.Error(),
		})
		return c.loadFallback()
	}
	if len(reviews) == 0 {
		logger.Warn("Hostaway returned no reviews, using fallback dataset", nil)
		return c.loadFallback()
	}

	if err := validateAll(reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) fetchFromAPI(ctx context.Context) ([]RawReview, error) {
	url := fmt.Sprintf("%s/v1/accounts/%s/reviews", c.baseURL, c.accountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return body.Result, nil
}

// loadFallback parses the embedded dataset with the same schema checks as
// live records.
func (c *Client) loadFallback() ([]RawReview, error) {
	var reviews []RawReview
	if err := json.Unmarshal(mockDataset, &reviews); err != nil {
		return nil, fmt.Errorf("failed to parse fallback dataset: %w", err)
	}

	if err := validateAll(reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func validateAll(reviews []RawReview) error {
	for i, r := range reviews {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("invalid review record %q (index %d): %w", r.ID, i, err)
		}
	}
	return nil
}
