package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"surrounding whitespace", "\n  {\"a\":1}  \n", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"single line fence", "```json {\"a\":1}```", `{"a":1}`},
		{"fence without tag on one line", "```{\"a\":1}```", `{"a":1}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSON(tt.in))
		})
	}
}

func TestCleanJSONIsIdempotent(t *testing.T) {
	in := "```json\n{\"skills\": [\"Go\"]}\n```"
	once := CleanJSON(in)
	assert.Equal(t, once, CleanJSON(once))
}

func TestClassifyVertexErrorRateLimited(t *testing.T) {
	st, err := status.New(codes.ResourceExhausted, "quota exceeded").
		WithDetails(&errdetails.RetryInfo{RetryDelay: durationpb.New(17 * time.Second)})
	require.NoError(t, err)

	classified := classifyVertexError(st.Err())

	delay, ok := IsRateLimited(classified)
	require.True(t, ok)
	assert.Equal(t, 17*time.Second, delay)
}

func TestClassifyVertexErrorRateLimitedWithoutHint(t *testing.T) {
	wrapped := fmt.Errorf("call: %w", status.Error(codes.ResourceExhausted, "429"))

	delay, ok := IsRateLimited(classifyVertexError(wrapped))
	require.True(t, ok)
	assert.Zero(t, delay)
}

func TestClassifyVertexErrorOther(t *testing.T) {
	for _, err := range []error{
		status.Error(codes.InvalidArgument, "bad prompt"),
		errors.New("connection reset"),
		context.DeadlineExceeded,
	} {
		classified := classifyVertexError(err)

		_, ok := IsRateLimited(classified)
		assert.False(t, ok)
		var svcErr *ServiceError
		assert.True(t, errors.As(classified, &svcErr))
		assert.ErrorIs(t, classified, err)
	}
}

func TestClassifyAPIErrorRateLimited(t *testing.T) {
	apiErr := genai.APIError{
		Code:    429,
		Message: "Resource has been exhausted",
		Status:  "RESOURCE_EXHAUSTED",
		Details: []map[string]any{
			{"@type": "type.googleapis.com/google.rpc.QuotaFailure"},
			{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "23s"},
		},
	}

	delay, ok := IsRateLimited(classifyAPIError(apiErr))
	require.True(t, ok)
	assert.Equal(t, 23*time.Second, delay)

	delay, ok = IsRateLimited(classifyAPIError(&apiErr))
	require.True(t, ok)
	assert.Equal(t, 23*time.Second, delay)
}

func TestClassifyAPIErrorStatusOnly(t *testing.T) {
	apiErr := genai.APIError{Code: 400, Status: "RESOURCE_EXHAUSTED"}

	delay, ok := IsRateLimited(classifyAPIError(apiErr))
	require.True(t, ok)
	assert.Zero(t, delay)
}

func TestClassifyAPIErrorOther(t *testing.T) {
	classified := classifyAPIError(genai.APIError{Code: 500, Status: "INTERNAL"})

	_, ok := IsRateLimited(classified)
	assert.False(t, ok)
	var svcErr *ServiceError
	assert.True(t, errors.As(classified, &svcErr))
}

func TestRetryDelayIgnoresMalformedHints(t *testing.T) {
	assert.Zero(t, retryDelay(nil))
	assert.Zero(t, retryDelay([]map[string]any{{"@type": retryInfoType, "retryDelay": "soon"}}))
	assert.Zero(t, retryDelay([]map[string]any{{"@type": retryInfoType, "retryDelay": 12}}))
	assert.Equal(t, 1500*time.Millisecond, retryDelay([]map[string]any{{"@type": retryInfoType, "retryDelay": "1.5s"}}))
}

func TestErrorMessages(t *testing.T) {
	rl := &RateLimitedError{RetryAfter: 2 * time.Second, Err: errors.New("429")}
	assert.Contains(t, rl.Error(), "retry after 2s")

	svc := &ServiceError{Message: "failed to generate content"}
	assert.Equal(t, "failed to generate content", svc.Error())
}

func TestAPIKeyTextJoinsAllCandidates(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking", Thought: true},
				{Text: `{"skills":`},
			}}},
			nil,
			{Content: &genai.Content{Parts: []*genai.Part{{Text: ` ["go"]}`}}}},
		},
	}

	text, ok := apiKeyText(resp)
	require.True(t, ok)
	assert.Equal(t, `{"skills": ["go"]}`, text)

	_, ok = apiKeyText(&genai.GenerateContentResponse{})
	assert.False(t, ok)
	_, ok = apiKeyText(nil)
	assert.False(t, ok)
}

func TestVertexTextJoinsAllCandidates(t *testing.T) {
	resp := &vertexgenai.GenerateContentResponse{
		Candidates: []*vertexgenai.Candidate{
			{Content: &vertexgenai.Content{Parts: []vertexgenai.Part{vertexgenai.Text("first ")}}},
			{Content: nil},
			{Content: &vertexgenai.Content{Parts: []vertexgenai.Part{vertexgenai.Text("second")}}},
		},
	}

	text, ok := vertexText(resp)
	require.True(t, ok)
	assert.Equal(t, "first second", text)

	_, ok = vertexText(&vertexgenai.GenerateContentResponse{})
	assert.False(t, ok)
}
