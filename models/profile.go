package models

// JobProfile is a target-role definition used to parametrize the analysis prompt
// @Description Job profile with skill and keyword lists
type JobProfile struct {
	ID                 string   `json:"id" example:"software_engineer"`
	Name               string   `json:"name" example:"Software Engineer"`
	RequiredSkills     []string `json:"required_skills"`
	PreferredSkills    []string `json:"preferred_skills"`
	ExperienceKeywords []string `json:"experience_keywords"`
	EducationKeywords  []string `json:"education_keywords"`
}

// Summary returns the identity of the profile
func (p JobProfile) Summary() ProfileSummary {
	return ProfileSummary{ID: p.ID, Name: p.Name}
}

// ProfileSummary identifies a job profile
// @Description Job profile identity
type ProfileSummary struct {
	ID   string `json:"id" example:"data_scientist"`
	Name string `json:"name" example:"Data Scientist"`
}

// ProfileKeywords are the four lists generated for a new profile
type ProfileKeywords struct {
	RequiredSkills     []string `json:"required_skills"`
	PreferredSkills    []string `json:"preferred_skills"`
	ExperienceKeywords []string `json:"experience_keywords"`
	EducationKeywords  []string `json:"education_keywords"`
}

// CreateProfileRequest is the body of a profile creation request
// @Description Profile creation request
type CreateProfileRequest struct {
	Name string `json:"name" example:"DevOps Engineer"`
}

// CreateProfileResponse is returned after a profile is created
// @Description Created profile identity
type CreateProfileResponse struct {
	ID      string `json:"id" example:"devops_engineer"`
	Name    string `json:"name" example:"DevOps Engineer"`
	Message string `json:"message" example:"Profile created successfully with AI-generated skills"`
}
