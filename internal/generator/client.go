package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// CompletionClient is the interface both completion implementations satisfy.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// QuotaExhaustedSentinel is returned instead of an error when every retry hit
// a rate limit and the client was configured for soft degradation. Callers
// must treat it as terminal for the current generation.
const QuotaExhaustedSentinel = "QUOTA_EXHAUSTED: free-tier quota exhausted, retry after some time"

// IsQuotaExhausted reports whether a completion is the quota sentinel rather
// than real content.
func IsQuotaExhausted(text string) bool {
	return strings.HasPrefix(text, "QUOTA_EXHAUSTED")
}

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// apiError is a non-200 response from the completion endpoint.
type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("gemini api error (status %d): %s", e.Status, e.Body)
}

// GeminiClient calls the Gemini generateContent endpoint over plain HTTP.
// Retry policy:
//   - 429 and 5xx-class statuses, timeouts, and connection errors retry with
//     a linearly growing backoff (base x attempt number)
//   - 400 and 403 fail immediately, they indicate a bad request or key
//   - a 200 body without the expected candidate/part shape fails immediately
type GeminiClient struct {
	apiKey         string
	model          string
	baseURL        string
	httpClient     *http.Client
	retries        int
	backoffBase    time.Duration
	attemptTimeout time.Duration
	quotaSentinel  bool
}

type GeminiOption func(*GeminiClient)

// WithBaseURL overrides the endpoint (for testing).
func WithBaseURL(url string) GeminiOption {
	return func(c *GeminiClient) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) GeminiOption {
	return func(c *GeminiClient) { c.httpClient = client }
}

// WithRetries sets the maximum attempt count.
func WithRetries(n int) GeminiOption {
	return func(c *GeminiClient) {
		if n > 0 {
			c.retries = n
		}
	}
}

// WithBackoffBase sets the base delay multiplied by the attempt number.
func WithBackoffBase(d time.Duration) GeminiOption {
	return func(c *GeminiClient) { c.backoffBase = d }
}

// WithAttemptTimeout bounds each individual attempt.
func WithAttemptTimeout(d time.Duration) GeminiOption {
	return func(c *GeminiClient) { c.attemptTimeout = d }
}

// WithQuotaSentinel selects the soft-degradation policy: when every retry was
// rate limited, return QuotaExhaustedSentinel instead of an error.
func WithQuotaSentinel(enabled bool) GeminiOption {
	return func(c *GeminiClient) { c.quotaSentinel = enabled }
}

func NewGeminiClient(apiKey, model string, opts ...GeminiOption) *GeminiClient {
	c := &GeminiClient{
		apiKey:         apiKey,
		model:          model,
		baseURL:        defaultGeminiBaseURL,
		httpClient:     &http.Client{},
		retries:        3,
		backoffBase:    2 * time.Second,
		attemptTimeout: 180 * time.Second,
		quotaSentinel:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			delay := c.backoffBase * time.Duration(attempt-1)
			log.Printf("[gemini] retrying in %v (attempt %d/%d)", delay, attempt, c.retries)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		text, retryable, err := c.attempt(ctx, body)
		if err == nil {
			return text, nil
		}
		if !retryable {
			return "", err
		}
		lastErr = err
		log.Printf("[gemini] attempt %d failed: %v", attempt, err)
	}

	var ae *apiError
	if c.quotaSentinel && errors.As(lastErr, &ae) && ae.Status == http.StatusTooManyRequests {
		log.Printf("[gemini] quota exhausted after %d attempts, returning sentinel", c.retries)
		return QuotaExhaustedSentinel, nil
	}
	return "", fmt.Errorf("gemini api failed after %d attempts: %w", c.retries, lastErr)
}

// attempt performs one bounded call. The second return value reports whether
// the failure is transient.
func (c *GeminiClient) attempt(ctx context.Context, body []byte) (string, bool, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeout or connection failure, transient by contract.
		return "", true, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		text := gjson.GetBytes(respBody, "candidates.0.content.parts.0.text")
		if !text.Exists() {
			// Contract violation, not transience.
			return "", false, fmt.Errorf("response missing candidate text: %s", truncate(string(respBody), 200))
		}
		return text.String(), false, nil
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusForbidden:
		return "", false, &apiError{Status: resp.StatusCode, Body: truncate(string(respBody), 200)}
	default:
		return "", true, &apiError{Status: resp.StatusCode, Body: truncate(string(respBody), 200)}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
