package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/resumeinsight/backend/gemini"
	"github.com/resumeinsight/backend/models"
)

// ErrParse is returned when the model reply is not a JSON object
var ErrParse = errors.New("malformed JSON in model response")

// resultSchema describes the reply shape. Fields violating it are treated as absent
const resultSchema = `{
  "type": "object",
  "properties": {
    "contact_info": {
      "type": "object",
      "properties": {
        "emails":   {"type": "array", "items": {"type": "string"}},
        "phones":   {"type": "array", "items": {"type": "string"}},
        "linkedin": {"type": "array", "items": {"type": "string"}}
      }
    },
    "skills":             {"type": "array", "items": {"type": "string"}},
    "experience_years":   {"type": ["integer", "number", "string"]},
    "education":          {"type": "array", "items": {"type": "string"}},
    "match_score":        {"type": ["number", "string"]},
    "match_details":      {"type": "object"},
    "recommendations":    {"type": "array", "items": {"type": "string"}},
    "summary":            {"type": "string"},
    "resume_description": {"type": "string"},
    "general_thoughts":   {"type": "string"}
  }
}`

var (
	schema        = mustSchema(resultSchema)
	leadingNumber = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)`)
)

// maxExperienceYears bounds experience_years; values outside [0, max] are dropped
const maxExperienceYears = math.MaxInt32

func mustSchema(source string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(fmt.Sprintf("analysis: invalid result schema: %v", err))
	}
	return s
}

// violations records the schema paths that failed validation
type violations []string

// at reports whether path, or anything nested under it, violated the schema
func (v violations) at(path string) bool {
	for _, field := range v {
		if field == path || strings.HasPrefix(field, path+".") {
			return true
		}
	}
	return false
}

// Normalize parses a model reply into a fully populated AnalysisResult
// Fields that are missing or of the wrong shape fall back to their defaults one by one
func Normalize(raw string) (models.AnalysisResult, error) {
	cleaned := gemini.CleanJSON(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if fields == nil {
		return models.AnalysisResult{}, fmt.Errorf("%w: reply is null", ErrParse)
	}

	validation, err := schema.Validate(gojsonschema.NewBytesLoader([]byte(cleaned)))
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	var invalid violations
	for _, resultErr := range validation.Errors() {
		invalid = append(invalid, resultErr.Field())
	}

	result := models.NewAnalysisResult()

	if raw, ok := fields["contact_info"]; ok && !invalid.at("contact_info") {
		var contact map[string]json.RawMessage
		if json.Unmarshal(raw, &contact) == nil {
			result.ContactInfo.Emails = stringList(contact["emails"], invalid.at("contact_info.emails"))
			result.ContactInfo.Phones = stringList(contact["phones"], invalid.at("contact_info.phones"))
			result.ContactInfo.LinkedIn = stringList(contact["linkedin"], invalid.at("contact_info.linkedin"))
		}
	}

	result.Skills = stringList(fields["skills"], invalid.at("skills"))
	result.Education = stringList(fields["education"], invalid.at("education"))
	result.Recommendations = stringList(fields["recommendations"], invalid.at("recommendations"))

	if raw, ok := fields["experience_years"]; ok && !invalid.at("experience_years") {
		if years, ok := lenientNumber(raw); ok && years >= 0 && years <= maxExperienceYears {
			result.ExperienceYears = int(years)
		}
	}
	if raw, ok := fields["match_score"]; ok && !invalid.at("match_score") {
		if score, ok := lenientNumber(raw); ok {
			result.MatchScore = score
		}
	}

	if raw, ok := fields["match_details"]; ok && !invalid.at("match_details") {
		var details map[string]any
		if json.Unmarshal(raw, &details) == nil && details != nil {
			result.MatchDetails = details
		}
	}

	result.Summary = text(fields["summary"], invalid.at("summary"))
	result.ResumeDescription = text(fields["resume_description"], invalid.at("resume_description"))
	result.GeneralThoughts = text(fields["general_thoughts"], invalid.at("general_thoughts"))

	return result, nil
}

func stringList(raw json.RawMessage, invalid bool) []string {
	if raw == nil || invalid {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil || list == nil {
		return []string{}
	}
	return list
}

func text(raw json.RawMessage, invalid bool) string {
	if raw == nil || invalid {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// lenientNumber accepts a JSON number or a string that starts with one, e.g. "5 years"
func lenientNumber(raw json.RawMessage) (float64, bool) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, isFinite(n)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	match := leadingNumber.FindStringSubmatch(s)
	if match == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return n, isFinite(n)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
