package analysis

import (
	"fmt"
	"strings"

	"github.com/resumeinsight/backend/models"
)

const listSeparator = ", "

// BuildPrompt renders the analysis instruction for a resume, optionally scoped to a job profile
func BuildPrompt(resumeText string, profile *models.JobProfile) string {
	var sb strings.Builder

	sb.WriteString("Analyze the following resume text and provide a comprehensive analysis in JSON format.\n")

	if profile != nil {
		fmt.Fprintf(&sb, `
Job Profile: %s
Required Skills: %s
Preferred Skills: %s
Experience Keywords: %s
Education Keywords: %s
`,
			profile.Name,
			strings.Join(profile.RequiredSkills, listSeparator),
			strings.Join(profile.PreferredSkills, listSeparator),
			strings.Join(profile.ExperienceKeywords, listSeparator),
			strings.Join(profile.EducationKeywords, listSeparator),
		)
	}

	fmt.Fprintf(&sb, `
Resume Text:
%s

Return the analysis as a JSON object with exactly this structure:
{
  "contact_info": {
    "emails": ["every email address found"],
    "phones": ["every phone number found"],
    "linkedin": ["every LinkedIn profile URL found"]
  },
  "skills": ["technical and professional skills identified"],
  "experience_years": 0,
  "education": ["educational qualifications found"],
  "match_score": 0,
  "match_details": {
    "required_skills_match": "X/Y matched",
    "preferred_skills_match": "X/Y matched",
    "experience_keywords_match": "X/Y matched",
    "education_keywords_match": "X/Y matched",
    "required_score": "score for required skills (0-40)",
    "preferred_score": "score for preferred skills (0-25)",
    "experience_score": "score for experience keywords (0-20)",
    "education_score": "score for education keywords (0-15)"
  },
  "recommendations": ["specific recommendations to improve the resume"],
  "summary": "brief summary of the candidate's profile",
  "resume_description": "detailed description of what the resume contains, including key highlights, career progression and notable achievements",
  "general_thoughts": "overall evaluation of the resume quality, presentation, strengths and areas for improvement"
}

Field types:
- experience_years: integer number of years
- match_score: number from 0 to 100, 0 when no job profile is given
- every list is an array of strings, every text field is a string

Guidelines:
- Extract contact information accurately
- Identify all relevant technical and soft skills
- Infer experience years from statements like "X years of experience" or from the dates of the work history
- For match scoring (only when a job profile is given) use weighted scoring: Required skills 40%%, Preferred skills 25%%, Experience keywords 20%%, Education keywords 15%%
- Give actionable recommendations for improving the resume
- For resume_description cover career progression, key achievements, education background and notable projects
- For general_thoughts evaluate formatting, content quality, completeness and professional presentation
- Return ONLY the JSON object, no markdown formatting, no explanation.
`, resumeText)

	return sb.String()
}
