package models

// ErrorResponse represents an API error response
// @Description Standard error response
type ErrorResponse struct {
	Error   string `json:"error" example:"File type not supported"`
	Code    int    `json:"code" example:"400"`
	Details string `json:"details,omitempty" example:"allowed: txt, pdf, doc, docx"`
}

// MessageResponse carries a human readable confirmation
// @Description Confirmation message
type MessageResponse struct {
	Message string `json:"message" example:"Profile deleted successfully"`
}

// HealthResponse represents health check response
// @Description Server health status
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Message   string `json:"message" example:"Resume Analysis API is running"`
	Version   string `json:"version" example:"1.0.0"`
	Timestamp string `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}

// AnalyzeTextRequest is the input of text-only analysis (MCP tool)
type AnalyzeTextRequest struct {
	ResumeText string `json:"resume_text"`
	JobProfile string `json:"job_profile,omitempty"`
}
