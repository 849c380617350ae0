// Package openai implements the classification oracle over the OpenAI
// chat-completions API. One request per petition, low temperature and a
// JSON response format keep the oracle deterministic-leaning; the response
// is never trusted until it passes verdict validation.
package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/radicado-io/petition-classifier/internal/core/domain"
)

const (
	DefaultModel          = "gpt-4-turbo"
	DefaultBaseURL        = "https://api.openai.com"
	DefaultTemperature    = 0.3
	DefaultMaxPromptChars = 8000
	DefaultTimeout        = 60 * time.Second
)

type Config struct {
	BaseURL        string
	APIKey         string
	Model          string
	Temperature    float64
	MaxPromptChars int
	Timeout        time.Duration
}

type Client struct {
	baseURL        string
	apiKey         string
	model          string
	temperature    float64
	maxPromptChars int
	httpClient     *http.Client
	breaker        *oracleBreaker
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxPromptChars <= 0 {
		cfg.MaxPromptChars = DefaultMaxPromptChars
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		model:          cfg.Model,
		temperature:    cfg.Temperature,
		maxPromptChars: cfg.MaxPromptChars,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		breaker:        newOracleBreaker(),
	}
}

func (c *Client) ModelID() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Classify issues exactly one oracle call. Transport trouble (network,
// timeout, HTTP error status, open breaker) surfaces as ErrOracleTransport;
// a reachable oracle returning an unusable payload surfaces as
// ErrMalformedVerdict. Neither is retried here.
func (c *Client) Classify(ctx context.Context, text, referenceContext string) (domain.Verdict, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
		ResponseFormat: responseFormat{
			Type: "json_object",
		},
		Messages: []chatMessage{
			{Role: "system", Content: buildSystemPrompt(referenceContext)},
			{Role: "user", Content: "Classify this petition:\n\n" + truncateAtBoundary(text, c.maxPromptChars)},
		},
	}

	var resp chatResponse
	err := c.breaker.execute(func() error {
		return c.postJSON(ctx, "/v1/chat/completions", reqBody, &resp, "classify")
	})
	if err != nil {
		return domain.Verdict{}, wrapTransportError("classify petition", err)
	}

	if len(resp.Choices) == 0 {
		return domain.Verdict{}, domain.WrapError(domain.ErrMalformedVerdict, "classify petition", errors.New("response carries no choices"))
	}

	return domain.ParseVerdict([]byte(extractJSONObject(resp.Choices[0].Message.Content)))
}

func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
