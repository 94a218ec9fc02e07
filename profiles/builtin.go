package profiles

import "github.com/resumeinsight/backend/models"

// Built-in profile ids; these can never be deleted
const (
	SoftwareEngineer = "software_engineer"
	DataScientist    = "data_scientist"
	MarketingManager = "marketing_manager"
)

func builtinProfiles() []models.JobProfile {
	return []models.JobProfile{
		{
			ID:                 SoftwareEngineer,
			Name:               "Software Engineer",
			RequiredSkills:     []string{"python", "java", "javascript", "react", "node.js", "sql", "git", "api", "database", "web development"},
			PreferredSkills:    []string{"docker", "kubernetes", "aws", "microservices", "agile", "scrum", "testing", "ci/cd"},
			ExperienceKeywords: []string{"developed", "built", "implemented", "designed", "created", "maintained", "optimized"},
			EducationKeywords:  []string{"computer science", "software engineering", "information technology", "programming"},
		},
		{
			ID:                 DataScientist,
			Name:               "Data Scientist",
			RequiredSkills:     []string{"python", "r", "machine learning", "statistics", "sql", "pandas", "numpy", "scikit-learn", "tensorflow", "pytorch"},
			PreferredSkills:    []string{"deep learning", "nlp", "computer vision", "big data", "spark", "hadoop", "tableau", "power bi"},
			ExperienceKeywords: []string{"analyzed", "modeled", "predicted", "visualized", "researched", "experimented"},
			EducationKeywords:  []string{"data science", "statistics", "mathematics", "computer science", "analytics"},
		},
		{
			ID:                 MarketingManager,
			Name:               "Marketing Manager",
			RequiredSkills:     []string{"digital marketing", "seo", "social media", "content marketing", "analytics", "campaign management"},
			PreferredSkills:    []string{"google ads", "facebook ads", "email marketing", "crm", "marketing automation", "brand management"},
			ExperienceKeywords: []string{"managed", "launched", "increased", "improved", "coordinated", "strategized"},
			EducationKeywords:  []string{"marketing", "business administration", "communications", "advertising"},
		},
	}
}
