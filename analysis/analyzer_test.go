package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeinsight/backend/gemini"
	"github.com/resumeinsight/backend/gemini/geminitest"
	"github.com/resumeinsight/backend/models"
)

// profileMap is a fixed ProfileSource
type profileMap map[string]models.JobProfile

func (m profileMap) Lookup(id string) (models.JobProfile, bool) {
	p, ok := m[id]
	return p, ok
}

var backendProfile = models.JobProfile{
	ID:                 "backend_engineer",
	Name:               "Backend Engineer",
	RequiredSkills:     []string{"go", "sql"},
	PreferredSkills:    []string{"kubernetes"},
	ExperienceKeywords: []string{"built", "scaled"},
	EducationKeywords:  []string{"computer science"},
}

const contactLine = "Contact: a@b.com, 555-123-4567, linkedin.com/in/jdoe"

func noSleep(ctx context.Context, d time.Duration) error { return ctx.Err() }

func TestAnalyzeSuccess(t *testing.T) {
	gen := geminitest.NewGenerator(geminitest.Reply("```json\n" + completeReply + "\n```"))
	analyzer := NewAnalyzer(gen, profileMap{"backend_engineer": backendProfile})

	result := analyzer.Analyze(context.Background(), "Jane Doe, Go developer", "backend_engineer")

	assert.Equal(t, []string{"go", "sql"}, result.Skills)
	assert.Equal(t, 82.5, result.MatchScore)
	require.Len(t, gen.Prompts(), 1)
	assert.Contains(t, gen.Prompts()[0], "Job Profile: Backend Engineer")
	assert.Contains(t, gen.Prompts()[0], "Jane Doe, Go developer")
}

func TestAnalyzeUnknownProfileUsesGenericPrompt(t *testing.T) {
	gen := geminitest.NewGenerator(geminitest.Reply(`{}`))
	analyzer := NewAnalyzer(gen, profileMap{"backend_engineer": backendProfile})

	analyzer.Analyze(context.Background(), "resume", "astronaut")

	require.Len(t, gen.Prompts(), 1)
	assert.NotContains(t, gen.Prompts()[0], "Job Profile:")
	assert.Empty(t, analyzer.ProfileName("astronaut"))
	assert.Equal(t, "Backend Engineer", analyzer.ProfileName("backend_engineer"))
	assert.Empty(t, analyzer.ProfileName(""))
}

func TestAnalyzeDegradedResults(t *testing.T) {
	tests := []struct {
		name           string
		steps          []geminitest.Step
		recommendation string
	}{
		{
			name: "rate limit exhausted",
			steps: []geminitest.Step{
				geminitest.Fail(rateLimited(0)),
				geminitest.Fail(rateLimited(0)),
				geminitest.Fail(rateLimited(0)),
			},
			recommendation: RateLimitedRecommendation,
		},
		{
			name:           "malformed reply",
			steps:          []geminitest.Step{geminitest.Reply("Sorry, I cannot help with that.")},
			recommendation: ParseErrorRecommendation,
		},
		{
			name: "service error",
			steps: []geminitest.Step{
				geminitest.Fail(&gemini.ServiceError{Message: "failed to generate content", Err: errors.New("permission denied")}),
			},
			recommendation: "Error occurred during AI analysis: failed to generate content: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := NewAnalyzer(geminitest.NewGenerator(tt.steps...), nil, WithSleeper(noSleep))

			result := analyzer.Analyze(context.Background(), contactLine, "")

			assert.Equal(t, models.ContactInfo{
				Emails:   []string{"a@b.com"},
				Phones:   []string{"555-123-4567"},
				LinkedIn: []string{"linkedin.com/in/jdoe"},
			}, result.ContactInfo)
			assert.Equal(t, []string{tt.recommendation}, result.Recommendations)

			assert.Equal(t, []string{}, result.Skills)
			assert.Equal(t, []string{}, result.Education)
			assert.Equal(t, map[string]any{}, result.MatchDetails)
			assert.Zero(t, result.ExperienceYears)
			assert.Zero(t, result.MatchScore)
			assert.Empty(t, result.Summary)
			assert.Empty(t, result.ResumeDescription)
			assert.Empty(t, result.GeneralThoughts)
		})
	}
}

func TestAnalyzeCancelledBackoffIsOtherError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := geminitest.NewGenerator(geminitest.Fail(rateLimited(0)))
	analyzer := NewAnalyzer(gen, nil, WithSleeper(func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}))

	result := analyzer.Analyze(ctx, contactLine, "")

	require.Len(t, result.Recommendations, 1)
	assert.True(t, strings.HasPrefix(result.Recommendations[0], "Error occurred during AI analysis:"))
	assert.Equal(t, []string{"a@b.com"}, result.ContactInfo.Emails)
}

func TestBuildPromptWithProfile(t *testing.T) {
	prompt := BuildPrompt("RESUME BODY", &backendProfile)

	assert.Contains(t, prompt, "RESUME BODY")
	assert.Contains(t, prompt, "Required Skills: go, sql")
	assert.Contains(t, prompt, "Preferred Skills: kubernetes")
	assert.Contains(t, prompt, "Experience Keywords: built, scaled")
	assert.Contains(t, prompt, "Education Keywords: computer science")
	assert.Contains(t, prompt, "Required skills 40%, Preferred skills 25%, Experience keywords 20%, Education keywords 15%")
	assert.Contains(t, prompt, "Return ONLY the JSON object")
}

func TestBuildPromptWithoutProfile(t *testing.T) {
	prompt := BuildPrompt("RESUME BODY", nil)

	assert.Contains(t, prompt, "RESUME BODY")
	assert.NotContains(t, prompt, "Job Profile:")
	for _, field := range []string{
		"contact_info", "skills", "experience_years", "education", "match_score",
		"match_details", "recommendations", "summary", "resume_description", "general_thoughts",
	} {
		assert.Contains(t, prompt, `"`+field+`"`)
	}
}

func TestBuildPromptKeepsPercentSignsInResume(t *testing.T) {
	prompt := BuildPrompt("Grew revenue 40% in 2023", nil)
	assert.Contains(t, prompt, "Grew revenue 40% in 2023")
}
