package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"
	"github.com/rs/zerolog"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/resumeinsight/backend/config"
	"github.com/resumeinsight/backend/logger"
)

// VertexClient talks to Gemini through Vertex AI using application default credentials
type VertexClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	logger    zerolog.Logger
}

// NewVertexClient creates a new Vertex AI backed generator
func NewVertexClient(ctx context.Context, cfg *config.Config) (*VertexClient, error) {
	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.GeminiModel)
	model.SetTemperature(0.2)
	model.SetTopP(0.8)
	model.SetMaxOutputTokens(8192)
	model.ResponseMIMEType = "application/json"

	return &VertexClient{
		client:    client,
		model:     model,
		modelName: cfg.GeminiModel,
		logger:    logger.Component("gemini.vertex"),
	}, nil
}

// Close closes the Vertex AI client
func (c *VertexClient) Close() error {
	return c.client.Close()
}

// Generate sends the prompt and returns the concatenated text of the first candidate
func (c *VertexClient) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		classified := classifyVertexError(err)
		c.logger.Warn().Err(classified).Str("model", c.modelName).Msg("generate content failed")
		return "", classified
	}

	text, ok := vertexText(resp)
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

func vertexText(resp *genai.GenerateContentResponse) (string, bool) {
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
			if textPart, ok := part.(genai.Text); ok {
				sb.WriteString(string(textPart))
			}
		}
	}
	return sb.String(), found
}

// classifyVertexError maps a gRPC failure onto the generator error types
func classifyVertexError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &ServiceError{Message: "model call interrupted", Err: err}
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.ResourceExhausted {
		return &ServiceError{Message: "failed to generate content", Err: err}
	}

	var retryAfter time.Duration
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.RetryInfo); ok && info.GetRetryDelay() != nil {
			retryAfter = info.GetRetryDelay().AsDuration()
			break
		}
	}
	return &RateLimitedError{RetryAfter: retryAfter, Err: err}
}
