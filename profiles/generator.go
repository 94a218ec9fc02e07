package profiles

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/resumeinsight/backend/gemini"
	"github.com/resumeinsight/backend/logger"
	"github.com/resumeinsight/backend/models"
)

// ModelKeywordGenerator asks the model for the keyword lists of a role
type ModelKeywordGenerator struct {
	generator gemini.Generator
	logger    zerolog.Logger
}

// NewModelKeywordGenerator creates a new keyword generator
func NewModelKeywordGenerator(generator gemini.Generator) *ModelKeywordGenerator {
	return &ModelKeywordGenerator{
		generator: generator,
		logger:    logger.Component("profiles.generator"),
	}
}

// GenerateKeywords makes a single model call. A list that is missing or malformed
// is empty on its own; a failed call or unparseable reply yields four empty lists
func (g *ModelKeywordGenerator) GenerateKeywords(ctx context.Context, roleName string) models.ProfileKeywords {
	reply, err := g.generator.Generate(ctx, keywordPrompt(roleName))
	if err != nil {
		g.logger.Error().Err(err).Str("role", roleName).Msg("error generating profile")
		return emptyKeywords()
	}

	keywords, err := parseKeywords(reply)
	if err != nil {
		g.logger.Error().Err(err).Str("role", roleName).Msg("could not parse generated profile")
		return emptyKeywords()
	}
	return keywords
}

func keywordPrompt(roleName string) string {
	return fmt.Sprintf(`Based on the job role %q, generate a comprehensive job profile with relevant skills and keywords.

Return a JSON object with exactly this structure:
{
  "required_skills": ["8-12 essential technical and professional skills for this role"],
  "preferred_skills": ["6-10 additional skills that would be beneficial"],
  "experience_keywords": ["6-8 action verbs commonly found in resumes for this role"],
  "education_keywords": ["4-6 educational backgrounds or fields relevant to this role"]
}

Guidelines:
- Focus on current industry standards and requirements
- Include both technical and soft skills where appropriate
- Make skills specific and relevant to the role
- Use lowercase for consistency
- Return ONLY the JSON object, no markdown formatting, no explanation.`, roleName)
}

func parseKeywords(reply string) (models.ProfileKeywords, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(gemini.CleanJSON(reply)), &fields); err != nil {
		return models.ProfileKeywords{}, err
	}
	if fields == nil {
		return models.ProfileKeywords{}, fmt.Errorf("reply is null")
	}

	list := func(key string) []string {
		var values []string
		if raw, ok := fields[key]; ok && json.Unmarshal(raw, &values) == nil && values != nil {
			return values
		}
		return []string{}
	}

	return models.ProfileKeywords{
		RequiredSkills:     list("required_skills"),
		PreferredSkills:    list("preferred_skills"),
		ExperienceKeywords: list("experience_keywords"),
		EducationKeywords:  list("education_keywords"),
	}, nil
}

func emptyKeywords() models.ProfileKeywords {
	return models.ProfileKeywords{
		RequiredSkills:     []string{},
		PreferredSkills:    []string{},
		ExperienceKeywords: []string{},
		EducationKeywords:  []string{},
	}
}
