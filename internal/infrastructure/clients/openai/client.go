package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gradtohired/talentsearch/pkg/config"
	apperrors "github.com/gradtohired/talentsearch/pkg/errors"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client turns prose search descriptions into candidate queries via the
// OpenAI responses API. Its output is untrusted text; the safety validator
// decides whether it may execute.
type Client struct {
	apiKey         string
	model          string
	baseURL        string
	maxOutputToken int
	temperature    float64
	httpClient     *http.Client
	limiter        *tokenBucket
}

// NewClient creates a new translation client
func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, apperrors.NewConfigurationError("openai api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	maxTokens := cfg.MaxOutputToken
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	// Low temperature: determinism over creativity
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = 0.1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &Client{
		apiKey:         cfg.APIKey,
		model:          model,
		baseURL:        defaultBaseURL,
		maxOutputToken: maxTokens,
		temperature:    temperature,
		httpClient:     &http.Client{Timeout: timeout},
		limiter:        newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst),
	}, nil
}

// SetBaseURL overrides the API endpoint, for tests
func (c *Client) SetBaseURL(url string) {
	c.baseURL = strings.TrimRight(url, "/")
}

// Close releases the rate limiter's refill goroutine. Safe to call more
// than once and on a client built without a limiter.
func (c *Client) Close() {
	if c.limiter != nil {
		c.limiter.Stop()
	}
}

type responseContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type responseOutput struct {
	Content []responseContent `json:"content"`
}

type responseEnvelope struct {
	Output []responseOutput `json:"output"`
}

// TranslateQuery sends one bounded, low-temperature completion request and
// returns the candidate query text with any code fences stripped.
func (c *Client) TranslateQuery(ctx context.Context, schemaDescription, userText string) (string, error) {
	if strings.TrimSpace(userText) == "" {
		return "", apperrors.NewValidationError("search description is required")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", translateErr("rate limiter wait interrupted", err)
		}
	}

	payload := map[string]interface{}{
		"model": c.model,
		"input": []map[string]string{
			{"role": "system", "content": buildTranslationSystemPrompt(schemaDescription)},
			{"role": "user", "content": userText},
		},
		"temperature":       c.temperature,
		"max_output_tokens": c.maxOutputToken,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.NewInternalError("failed to encode translation request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewInternalError("failed to build translation request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", translateErr("translation request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.NewTranslationError(fmt.Sprintf("translation request failed with status %d", resp.StatusCode), nil)
	}

	var envelope responseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", apperrors.NewTranslationError("failed to decode translation response", err)
	}

	var text string
	for _, out := range envelope.Output {
		for _, content := range out.Content {
			if content.Type == "output_text" && content.Text != "" {
				text = content.Text
				break
			}
		}
		if text != "" {
			break
		}
	}

	cleaned := stripCodeFences(text)
	if cleaned == "" {
		return "", apperrors.NewTranslationError("translation response contained no query text", nil)
	}
	return cleaned, nil
}

// translateErr maps deadline expiry to the timeout kind, everything else to
// the translation kind
func translateErr(message string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
		return apperrors.NewTimeoutError(message, err)
	}
	return apperrors.NewTranslationError(message, err)
}

func isClientTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// stripCodeFences removes Markdown fencing the service may wrap the query in
func stripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```sql") {
		cleaned = strings.TrimPrefix(cleaned, "```sql")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}

func newTokenBucket(rpm int, burst int) *tokenBucket {
	if rpm < 0 {
		return nil
	}
	if rpm == 0 {
		rpm = 60
	}
	if burst <= 0 {
		burst = 5
	}

	bucket := &tokenBucket{
		tokens: make(chan struct{}, burst),
		done:   make(chan struct{}),
	}
	for i := 0; i < burst; i++ {
		bucket.tokens <- struct{}{}
	}

	interval := time.Minute / time.Duration(rpm)
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-bucket.done:
				return
			case <-ticker.C:
				select {
				case bucket.tokens <- struct{}{}:
				default:
				}
			}
		}
	}()

	return bucket
}

type tokenBucket struct {
	tokens    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Stop ends the refill goroutine. Safe to call more than once.
func (b *tokenBucket) Stop() {
	b.closeOnce.Do(func() { close(b.done) })
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.tokens:
		return nil
	}
}
