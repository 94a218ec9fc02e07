package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/resumeinsight/backend/config"
	"github.com/resumeinsight/backend/logger"
)

const retryInfoType = "type.googleapis.com/google.rpc.RetryInfo"

// APIKeyClient talks to the public Gemini API with an API key
type APIKeyClient struct {
	client    *genai.Client
	modelName string
	genConfig *genai.GenerateContentConfig
	logger    zerolog.Logger
}

// NewAPIKeyClient creates a Gemini API generator. httpClient may be nil
func NewAPIKeyClient(ctx context.Context, cfg *config.Config, httpClient *http.Client) (*APIKeyClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.GeminiAPIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &APIKeyClient{
		client:    client,
		modelName: cfg.GeminiModel,
		genConfig: &genai.GenerateContentConfig{
			Temperature:      genai.Ptr[float32](0.2),
			TopP:             genai.Ptr[float32](0.8),
			MaxOutputTokens:  8192,
			ResponseMIMEType: "application/json",
		},
		logger: logger.Component("gemini.apikey"),
	}, nil
}

// Generate sends the prompt and returns the concatenated text of the first candidate
func (c *APIKeyClient) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), c.genConfig)
	if err != nil {
		classified := classifyAPIError(err)
		c.logger.Warn().Err(classified).Str("model", c.modelName).Msg("generate content failed")
		return "", classified
	}

	text, ok := apiKeyText(resp)
	if !ok {
		return "", &ServiceError{Message: "failed to generate content", Err: errNoCandidates}
	}

	c.logger.Debug().
		Str("model", c.modelName).
		Dur("latency", time.Since(start)).
		Int("reply_len", len(text)).
		Msg("generate content succeeded")
	return text, nil
}

func apiKeyText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil {
		return "", false
	}

	var sb strings.Builder
	found := false
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		found = true
		for _, part := range candidate.Content.Parts {
			if part != nil && !part.Thought {
				sb.WriteString(part.Text)
			}
		}
	}
	return sb.String(), found
}

// classifyAPIError maps a Gemini API failure onto the generator error types
func classifyAPIError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &ServiceError{Message: "model call interrupted", Err: err}
	}

	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		apiErr = *apiErrPtr
	default:
		return &ServiceError{Message: "failed to generate content", Err: err}
	}

	if apiErr.Code != http.StatusTooManyRequests && apiErr.Status != "RESOURCE_EXHAUSTED" {
		return &ServiceError{Message: "failed to generate content", Err: err}
	}
	return &RateLimitedError{RetryAfter: retryDelay(apiErr.Details), Err: err}
}

// retryDelay reads the RetryInfo detail, e.g. {"@type": "...RetryInfo", "retryDelay": "17s"}
func retryDelay(details []map[string]any) time.Duration {
	for _, detail := range details {
		if t, _ := detail["@type"].(string); t != retryInfoType {
			continue
		}
		raw, _ := detail["retryDelay"].(string)
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
	}
	return 0
}
