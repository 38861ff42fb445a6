package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/beautybot/backend/internal/domain"
)

// Client handles communication with the OpenAI chat completions API.
// It implements domain.TextGenerator.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	rateLimiter *rate.Limiter
	log         logrus.FieldLogger
	debug       bool
}

// NewClient creates a new OpenAI API client. requestsPerMinute sizes the
// client-side limiter to the account quota so bursts degrade into waiting
// instead of 429 responses.
func NewClient(apiKey, baseURL, model string, requestsPerMinute int, log logrus.FieldLogger) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 5)

	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		model:       model,
		rateLimiter: limiter,
		log:         log,
	}
}

// SetDebug enables verbose request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// chatRequest is the chat completions API request body
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// chatMessage is a single role-tagged message in a chat request
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the chat completions response we consume
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// maxAttempts bounds the request attempts per Generate call
const maxAttempts = 3

// exponentialBackoff returns the wait before retrying the given attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500<<(attempt-1)) * time.Millisecond
}

// Generate sends a system instruction and user prompt to the chat
// completions API and returns the first choice's content.
// Transient failures (transport errors, 429, 5xx) are retried up to 3 times
// with exponential backoff; auth and request errors fail immediately.
func (c *Client) Generate(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1/chat/completions", c.baseURL)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL, payload)
		if err != nil {
			c.log.WithFields(logrus.Fields{"attempt": attempt, "error": err}).Warn("openai request error")
			lastErr = err
			c.backoff(ctx, attempt)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if c.debug {
			c.log.WithFields(logrus.Fields{
				"status": resp.StatusCode,
				"body":   string(body),
			}).Debug("openai response")
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return parseChatResponse(body)
		case resp.StatusCode == http.StatusTooManyRequests:
			// Quota pressure, worth retrying after a backoff
			c.log.WithField("attempt", attempt).Warn("openai rate limited")
			lastErr = fmt.Errorf("%w: status %d", domain.ErrRateLimited, resp.StatusCode)
			c.backoff(ctx, attempt)
		case resp.StatusCode >= 500:
			// Upstream trouble, worth retrying
			c.log.WithFields(logrus.Fields{"attempt": attempt, "status": resp.StatusCode}).Warn("openai retryable error")
			lastErr = fmt.Errorf("%w: status %d", domain.ErrGenerationFailure, resp.StatusCode)
			c.backoff(ctx, attempt)
		default:
			// 4xx other than 429 will not improve with retries
			return "", fmt.Errorf("%w: status %d: %s", domain.ErrGenerationFailure, resp.StatusCode, string(body))
		}
	}

	return "", lastErr
}

// doRequest executes an HTTP POST with auth headers
func (c *Client) doRequest(ctx context.Context, reqURL string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", "BeautyBot/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailure, err)
	}

	return resp, nil
}

// backoff waits before the next attempt, or not at all when no attempt
// follows, aborting early if the context is cancelled
func (c *Client) backoff(ctx context.Context, attempt int) {
	if attempt >= maxAttempts {
		return
	}
	timer := time.NewTimer(exponentialBackoff(attempt))
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// parseChatResponse extracts the generated text from a 200 response body
func parseChatResponse(body []byte) (string, error) {
	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", domain.ErrMalformedResponse)
	}

	return chatResp.Choices[0].Message.Content, nil
}
