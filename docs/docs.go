// Package docs registers the OpenAPI description served at /swagger
// Regenerate with: swag init -g main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@resumeinsight.dev"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Check if the server is running",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "Server is healthy", "schema": {"$ref": "#/definitions/models.HealthResponse"}}
                }
            }
        },
        "/analyze-resume": {
            "post": {
                "description": "Upload a resume (PDF, DOC, DOCX or TXT, at most 16 MiB) and get a structured evaluation, optionally scored against a job profile. When the model is unavailable the contact details are still extracted and the recommendations explain the failure.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Resume"],
                "summary": "Analyze a resume",
                "parameters": [
                    {"type": "file", "description": "Resume file", "name": "resume", "in": "formData", "required": true},
                    {"type": "string", "description": "Job profile id, e.g. software_engineer", "name": "job_profile", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Analysis result", "schema": {"$ref": "#/definitions/models.AnalyzeResponse"}},
                    "400": {"description": "Missing or unsupported file, or no text could be extracted", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/job-profiles": {
            "get": {
                "description": "List the id and name of every job profile, built-in ones first",
                "produces": ["application/json"],
                "tags": ["Job Profiles"],
                "summary": "List job profiles",
                "responses": {
                    "200": {"description": "Job profiles", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.ProfileSummary"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Create a job profile from a role name. The skill and keyword lists are generated by the model; they are empty when generation fails.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Job Profiles"],
                "summary": "Create a job profile",
                "parameters": [
                    {"description": "Profile name", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateProfileRequest"}}
                ],
                "responses": {
                    "201": {"description": "Profile created", "schema": {"$ref": "#/definitions/models.CreateProfileResponse"}},
                    "400": {"description": "Profile name is required", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Profile already exists", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/job-profiles/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Job Profiles"],
                "summary": "Get a job profile",
                "parameters": [
                    {"type": "string", "description": "Profile id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Job profile", "schema": {"$ref": "#/definitions/models.JobProfile"}},
                    "404": {"description": "Profile not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Delete a custom job profile. Built-in profiles cannot be deleted.",
                "produces": ["application/json"],
                "tags": ["Job Profiles"],
                "summary": "Delete a job profile",
                "parameters": [
                    {"type": "string", "description": "Profile id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Profile deleted", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "400": {"description": "Built-in profile", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Profile not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ContactInfo": {
            "type": "object",
            "properties": {
                "emails": {"type": "array", "items": {"type": "string"}},
                "phones": {"type": "array", "items": {"type": "string"}},
                "linkedin": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.AnalyzeResponse": {
            "description": "Resume analysis with upload metadata",
            "type": "object",
            "properties": {
                "filename": {"type": "string", "example": "jane_doe.pdf"},
                "contact_info": {"$ref": "#/definitions/models.ContactInfo"},
                "skills": {"type": "array", "items": {"type": "string"}},
                "experience_years": {"type": "integer", "example": 5},
                "education": {"type": "array", "items": {"type": "string"}},
                "match_score": {"type": "number", "example": 78},
                "match_details": {"type": "object", "additionalProperties": true},
                "recommendations": {"type": "array", "items": {"type": "string"}},
                "summary": {"type": "string"},
                "resume_description": {"type": "string"},
                "general_thoughts": {"type": "string"},
                "job_profile": {"type": "string", "example": "Software Engineer"},
                "word_count": {"type": "integer", "example": 412},
                "character_count": {"type": "integer", "example": 2877}
            }
        },
        "models.JobProfile": {
            "description": "Job profile with skill and keyword lists",
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "software_engineer"},
                "name": {"type": "string", "example": "Software Engineer"},
                "required_skills": {"type": "array", "items": {"type": "string"}},
                "preferred_skills": {"type": "array", "items": {"type": "string"}},
                "experience_keywords": {"type": "array", "items": {"type": "string"}},
                "education_keywords": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.ProfileSummary": {
            "description": "Job profile identity",
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "data_scientist"},
                "name": {"type": "string", "example": "Data Scientist"}
            }
        },
        "models.CreateProfileRequest": {
            "description": "Profile creation request",
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "DevOps Engineer"}
            }
        },
        "models.CreateProfileResponse": {
            "description": "Created profile identity",
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "devops_engineer"},
                "name": {"type": "string", "example": "DevOps Engineer"},
                "message": {"type": "string", "example": "Profile created successfully with AI-generated skills"}
            }
        },
        "models.MessageResponse": {
            "description": "Confirmation message",
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Profile deleted successfully"}
            }
        },
        "models.ErrorResponse": {
            "description": "Standard error response",
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "File type not supported"},
                "code": {"type": "integer", "example": 400},
                "details": {"type": "string", "example": "allowed: txt, pdf, doc, docx"}
            }
        },
        "models.HealthResponse": {
            "description": "Server health status",
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "message": {"type": "string", "example": "Resume Analysis API is running"},
                "version": {"type": "string", "example": "1.0.0"},
                "timestamp": {"type": "string", "example": "2024-01-15T10:30:00Z"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the admin JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "ResumeInsight API",
	Description:      "AI-powered resume analysis: text extraction, Gemini based evaluation with deterministic fallback, and job profile management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
