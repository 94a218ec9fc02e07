package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeinsight/backend/analysis"
	"github.com/resumeinsight/backend/auth"
	"github.com/resumeinsight/backend/gemini/geminitest"
	"github.com/resumeinsight/backend/models"
	"github.com/resumeinsight/backend/profiles"
	"github.com/resumeinsight/backend/storage"
	"github.com/resumeinsight/backend/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedKeywords struct{}

func (fixedKeywords) GenerateKeywords(ctx context.Context, roleName string) models.ProfileKeywords {
	return models.ProfileKeywords{
		RequiredSkills:     []string{"terraform"},
		PreferredSkills:    []string{},
		ExperienceKeywords: []string{},
		EducationKeywords:  []string{},
	}
}

type testServer struct {
	router *gin.Engine
	gen    *geminitest.Generator
}

func newTestServer(t *testing.T, maxBytes int64, jwtService *auth.JWTService, steps ...geminitest.Step) *testServer {
	t.Helper()

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	gen := geminitest.NewGenerator(steps...)
	registry := profiles.NewRegistry(fixedKeywords{})
	analyzer := analysis.NewAnalyzer(gen, registry, analysis.WithSleeper(func(ctx context.Context, d time.Duration) error { return nil }))
	pipeline := analysis.NewPipeline(store, utils.NewDocumentExtractor(), analyzer)

	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/health", Health)
	RegisterRoutes(router.Group("/api"), NewResumeHandler(pipeline, maxBytes), NewProfileHandler(registry), jwtService)

	return &testServer{router: router, gen: gen}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func uploadRequest(t *testing.T, field, filename string, content []byte, profile string) *http.Request {
	t.Helper()

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	if profile != "" {
		require.NoError(t, mw.WriteField("job_profile", profile))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-resume", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 1<<20, nil)

	for _, path := range []string{"/health", "/api/health"} {
		w := s.do(httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, Version, resp.Version)
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	}
}

func TestAnalyzeResume(t *testing.T) {
	reply := `{"skills": ["python", "sql"], "experience_years": 3, "match_score": 71, "summary": "Analyst"}`
	s := newTestServer(t, 1<<20, nil, geminitest.Reply(reply))

	w := s.do(uploadRequest(t, "resume", "../Jane Doe (2024).txt", []byte("Jane Doe python sql"), "data_scientist"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Jane_Doe_2024_.txt", resp.Filename)
	assert.Equal(t, "Data Scientist", resp.JobProfile)
	assert.Equal(t, []string{"python", "sql"}, resp.Skills)
	assert.Equal(t, 71.0, resp.MatchScore)
	assert.Equal(t, 4, resp.WordCount)
	assert.Equal(t, 19, resp.CharacterCount)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	for _, key := range []string{"contact_info", "education", "match_details", "recommendations", "general_thoughts"} {
		assert.Contains(t, raw, key)
		assert.NotNil(t, raw[key], key)
	}
}

func TestAnalyzeResumeFallback(t *testing.T) {
	s := newTestServer(t, 1<<20, nil, geminitest.Reply("no json here"))

	w := s.do(uploadRequest(t, "resume", "cv.txt", []byte("Contact: a@b.com, 555-123-4567, linkedin.com/in/jdoe"), ""))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"a@b.com"}, resp.ContactInfo.Emails)
	assert.Equal(t, []string{analysis.ParseErrorRecommendation}, resp.Recommendations)
	assert.Empty(t, resp.JobProfile)
}

func TestAnalyzeResumeRejections(t *testing.T) {
	tests := []struct {
		name   string
		req    func(t *testing.T) *http.Request
		status int
		error  string
	}{
		{
			name:   "missing file",
			req:    func(t *testing.T) *http.Request { return uploadRequest(t, "", "", nil, "software_engineer") },
			status: http.StatusBadRequest,
			error:  "No resume file provided",
		},
		{
			name:   "wrong field",
			req:    func(t *testing.T) *http.Request { return uploadRequest(t, "cv", "cv.txt", []byte("text"), "") },
			status: http.StatusBadRequest,
			error:  "No resume file provided",
		},
		{
			name:   "unsupported extension",
			req:    func(t *testing.T) *http.Request { return uploadRequest(t, "resume", "cv.odt", []byte("text"), "") },
			status: http.StatusBadRequest,
			error:  "File type not supported. Please upload PDF, DOC, DOCX, or TXT files",
		},
		{
			name:   "no extractable text",
			req:    func(t *testing.T) *http.Request { return uploadRequest(t, "resume", "blank.txt", []byte("  \n "), "") },
			status: http.StatusBadRequest,
			error:  "Could not extract text from the resume",
		},
		{
			name: "too large",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "resume", "big.txt", bytes.Repeat([]byte("a"), 2048), "")
			},
			status: http.StatusRequestEntityTooLarge,
			error:  "File too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, 1024, nil)

			w := s.do(tt.req(t))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.error, decodeError(t, w).Error)
			assert.Zero(t, s.gen.Calls())
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in     string
		format models.DocumentFormat
		want   string
	}{
		{"resume.pdf", models.FormatPDF, "resume.pdf"},
		{"../../etc/passwd.txt", models.FormatTXT, "passwd.txt"},
		{`C:\Users\jane\My CV.docx`, models.FormatDOCX, "My_CV.docx"},
		{"..pdf", models.FormatPDF, "resume.pdf"},
		{"....", models.FormatTXT, "resume.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in, tt.format), tt.in)
	}
}

func TestProfileRoutes(t *testing.T) {
	s := newTestServer(t, 1<<20, nil)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/job-profiles", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.ProfileSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, []models.ProfileSummary{
		{ID: "software_engineer", Name: "Software Engineer"},
		{ID: "data_scientist", Name: "Data Scientist"},
		{ID: "marketing_manager", Name: "Marketing Manager"},
	}, list)

	create := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/job-profiles", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return s.do(req)
	}

	w = create(`{"name": "Cloud Architect"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.CreateProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "cloud_architect", created.ID)
	assert.Equal(t, "Cloud Architect", created.Name)

	w = create(`{"name": "cloud-architect"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = create(`{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Profile name is required", decodeError(t, w).Error)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/job-profiles/cloud_architect", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.JobProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, []string{"terraform"}, profile.RequiredSkills)

	w = s.do(httptest.NewRequest(http.MethodDelete, "/api/job-profiles/software_engineer", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot delete default profiles", decodeError(t, w).Error)

	w = s.do(httptest.NewRequest(http.MethodDelete, "/api/job-profiles/nonexistent_id", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(httptest.NewRequest(http.MethodDelete, "/api/job-profiles/cloud_architect", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/job-profiles/cloud_architect", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileMutationsRequireAdminToken(t *testing.T) {
	jwtService := auth.NewJWTService("s3cret")
	s := newTestServer(t, 1<<20, jwtService)

	req := httptest.NewRequest(http.MethodPost, "/api/job-profiles", strings.NewReader(`{"name": "SRE"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusUnauthorized, s.do(req).Code)

	token, err := jwtService.GenerateToken("ops", time.Hour)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPost, "/api/job-profiles", strings.NewReader(`{"name": "SRE"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusCreated, s.do(req).Code)

	assert.Equal(t, http.StatusOK, s.do(httptest.NewRequest(http.MethodGet, "/api/job-profiles", nil)).Code,
		"reads stay open")
}
