package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/resumeinsight/backend/analysis"
	"github.com/resumeinsight/backend/models"
)

// TextAnalyzer analyzes resume text that was already extracted
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, text, profileKey string) (*models.AnalyzeResponse, error)
}

// AnalyzeResumeTextTool analyzes plain resume text
type AnalyzeResumeTextTool struct {
	analyzer TextAnalyzer
}

// NewAnalyzeResumeTextTool creates a new resume analysis tool
func NewAnalyzeResumeTextTool(analyzer TextAnalyzer) *AnalyzeResumeTextTool {
	return &AnalyzeResumeTextTool{analyzer: analyzer}
}

func (t *AnalyzeResumeTextTool) Name() string {
	return "analyze_resume_text"
}

func (t *AnalyzeResumeTextTool) Description() string {
	return `Analyze plain resume text and return skills, contact details, education,
an experience estimate and recommendations. When job_profile is a known profile id
the result also carries a weighted match score (required 40%, preferred 25%,
experience keywords 20%, education keywords 15%).`
}

func (t *AnalyzeResumeTextTool) InputSchema() map[string]interface{} {
	return objectSchema(map[string]string{
		"resume_text": "The resume text content to analyze",
		"job_profile": "Optional job profile id, see list_job_profiles",
	}, "resume_text")
}

func (t *AnalyzeResumeTextTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var req models.AnalyzeTextRequest
	if err := json.Unmarshal(input, &req); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}

	resp, err := t.analyzer.AnalyzeText(ctx, req.ResumeText, req.JobProfile)
	if errors.Is(err, analysis.ErrExtractionEmpty) {
		return NewErrorResult("resume_text is empty")
	}
	if err != nil {
		return NewErrorResult(fmt.Sprintf("analysis failed: %v", err))
	}

	return NewSuccessResult(resp)
}
