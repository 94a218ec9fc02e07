package models

// ContactInfo holds contact strings found in a resume
type ContactInfo struct {
	Emails   []string `json:"emails"`
	Phones   []string `json:"phones"`
	LinkedIn []string `json:"linkedin"`
}

// AnalysisResult is the structured evaluation of a resume
// Every field is always populated; slices and maps are never nil
// @Description Resume analysis produced by the model, with defaults for anything it omitted
type AnalysisResult struct {
	ContactInfo       ContactInfo    `json:"contact_info"`
	Skills            []string       `json:"skills"`
	ExperienceYears   int            `json:"experience_years" example:"5"`
	Education         []string       `json:"education"`
	MatchScore        float64        `json:"match_score" example:"78"`
	MatchDetails      map[string]any `json:"match_details"`
	Recommendations   []string       `json:"recommendations"`
	Summary           string         `json:"summary"`
	ResumeDescription string         `json:"resume_description"`
	GeneralThoughts   string         `json:"general_thoughts"`
}

// NewContactInfo returns contact info with empty, non-nil lists
func NewContactInfo() ContactInfo {
	return ContactInfo{
		Emails:   []string{},
		Phones:   []string{},
		LinkedIn: []string{},
	}
}

// NewAnalysisResult returns a result with every field at its default
func NewAnalysisResult() AnalysisResult {
	return AnalysisResult{
		ContactInfo:     NewContactInfo(),
		Skills:          []string{},
		Education:       []string{},
		MatchDetails:    map[string]any{},
		Recommendations: []string{},
	}
}

// AnalyzeResponse is the analysis result plus request-scoped metadata
// @Description Resume analysis with upload metadata
type AnalyzeResponse struct {
	Filename string `json:"filename" example:"jane_doe.pdf"`
	AnalysisResult
	JobProfile     string `json:"job_profile" example:"Software Engineer"`
	WordCount      int    `json:"word_count" example:"412"`
	CharacterCount int    `json:"character_count" example:"2877"`
}
