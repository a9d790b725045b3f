package backup

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/models"
)

// ClientInterface defines the interface for the backup service client.
type ClientInterface interface {
	Ping(ctx context.Context) error
	PushTrades(ctx context.Context, trades []models.Trade) (*PushResponse, error)
	PullTrades(ctx context.Context) ([]models.Trade, error)
}

// Client talks to the cloud backup service. Trade records cross this
// boundary as opaque JSON; the service never sees executions.
type Client struct {
	client    *resty.Client
	apiKey    string
	secretKey string
	logger    *zap.Logger
	limiter   *rate.Limiter
}

// ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new backup service client.
func NewClient(cfg *config.Backup, logger *zap.Logger) *Client {
	client := resty.New().SetBaseURL(cfg.URL)
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{
		client:    client,
		apiKey:    cfg.ApiKey,
		secretKey: cfg.SecretKey,
		logger:    logger,
		limiter:   limiter,
	}
}

// sign creates a HMAC-SHA256 signature over the request body.
func (c *Client) sign(body []byte) string {
	h := hmac.New(sha256.New, []byte(c.secretKey))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// doRequest handles the actual request execution with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	var resp *resty.Response
	var err error
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		// Wait for the rate limiter
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
		resp, err = req.Execute(method, url)

		if err == nil && !resp.IsError() {
			return resp, nil // Success
		}

		// Analyze error and decide whether to retry
		shouldRetry := false
		var retryAfter time.Duration

		if resp != nil {
			statusCode := resp.StatusCode()
			if statusCode == http.StatusTooManyRequests {
				shouldRetry = true
				retryAfterHeader := resp.Header().Get("Retry-After")
				if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			} else if statusCode >= 500 { // Server errors
				shouldRetry = true
			}
		} else { // Network or other client-side errors
			shouldRetry = true
		}

		if !shouldRetry {
			return nil, fmt.Errorf("request failed with status %s: %s", resp.Status(), resp.String())
		}

		// If we should retry, calculate wait time
		if retryAfter == 0 {
			// Exponential backoff: 1s, 2s, 4s
			retryAfter = time.Duration(math.Pow(2, float64(i))) * time.Second
		}

		c.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(err),
		)

		select {
		case <-time.After(retryAfter):
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
}

// Ping checks connectivity with the backup service.
func (c *Client) Ping(ctx context.Context) error {
	req := c.client.R().SetHeader("X-API-KEY", c.apiKey)

	if _, err := c.doRequest(ctx, "GET", "/health", req); err != nil {
		return fmt.Errorf("failed to reach backup service: %w", err)
	}
	return nil
}

// PushResponse reports how many trades the service accepted.
type PushResponse struct {
	Accepted int    `json:"accepted"`
	SyncedAt string `json:"synced_at"`
}

// PushTrades uploads a snapshot of trades to the backup service.
func (c *Client) PushTrades(ctx context.Context, trades []models.Trade) (*PushResponse, error) {
	body, err := json.Marshal(trades)
	if err != nil {
		return nil, fmt.Errorf("failed to encode trades: %w", err)
	}

	req := c.client.R().
		SetHeader("X-API-KEY", c.apiKey).
		SetHeader("X-SIGNATURE", c.sign(body)).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&PushResponse{})

	resp, err := c.doRequest(ctx, "POST", "/trades", req)
	if err != nil {
		c.logger.Error("Failed to push trades after multiple attempts",
			zap.Error(err),
			zap.Int("count", len(trades)),
		)
		return nil, fmt.Errorf("failed to push trades: %w", err)
	}

	result := resp.Result().(*PushResponse)
	c.logger.Info("Pushed trades to backup service",
		zap.Int("count", len(trades)),
		zap.Int("accepted", result.Accepted))
	return result, nil
}

// PullTrades downloads the last uploaded trade snapshot.
func (c *Client) PullTrades(ctx context.Context) ([]models.Trade, error) {
	var trades []models.Trade

	req := c.client.R().
		SetHeader("X-API-KEY", c.apiKey).
		SetResult(&trades)

	resp, err := c.doRequest(ctx, "GET", "/trades", req)
	if err != nil {
		return nil, fmt.Errorf("failed to pull trades: %w", err)
	}

	result := resp.Result().(*[]models.Trade)
	return *result, nil
}
