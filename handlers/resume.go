package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/resumeinsight/backend/analysis"
	"github.com/resumeinsight/backend/logger"
	"github.com/resumeinsight/backend/models"
)

// multipartOverhead is allowed on top of the file limit for form fields and boundaries
const multipartOverhead = 1 << 20

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// ResumeAnalyzer runs an uploaded document through the analysis pipeline
type ResumeAnalyzer interface {
	Run(ctx context.Context, doc models.Document, profileKey string) (*models.AnalyzeResponse, error)
}

// ResumeHandler handles resume uploads
type ResumeHandler struct {
	analyzer ResumeAnalyzer
	maxBytes int64
	logger   zerolog.Logger
}

// NewResumeHandler creates a new resume handler
func NewResumeHandler(analyzer ResumeAnalyzer, maxBytes int64) *ResumeHandler {
	return &ResumeHandler{
		analyzer: analyzer,
		maxBytes: maxBytes,
		logger:   logger.Component("handlers.resume"),
	}
}

// AnalyzeResume analyzes an uploaded resume
// @Summary Analyze a resume
// @Description Upload a resume (PDF, DOC, DOCX or TXT, at most 16 MiB) and get a structured evaluation, optionally scored against a job profile. When the model is unavailable the contact details are still extracted and the recommendations explain the failure
// @Tags Resume
// @Accept multipart/form-data
// @Produce json
// @Param resume formData file true "Resume file"
// @Param job_profile formData string false "Job profile id, e.g. software_engineer"
// @Success 200 {object} models.AnalyzeResponse "Analysis result"
// @Failure 400 {object} models.ErrorResponse "Missing or unsupported file, or no text could be extracted"
// @Failure 413 {object} models.ErrorResponse "File too large"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /analyze-resume [post]
func (h *ResumeHandler) AnalyzeResume(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.tooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "No resume file provided",
			Code:  http.StatusBadRequest,
		})
		return
	}
	defer file.Close()

	if header.Filename == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "No file selected",
			Code:  http.StatusBadRequest,
		})
		return
	}

	format, ok := models.FormatFromFilename(header.Filename)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "File type not supported. Please upload PDF, DOC, DOCX, or TXT files",
			Code:    http.StatusBadRequest,
			Details: "allowed: txt, pdf, doc, docx",
		})
		return
	}

	if header.Size > h.maxBytes {
		h.tooLarge(c)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Failed to read resume file",
			Code:  http.StatusBadRequest,
		})
		return
	}
	if int64(len(data)) > h.maxBytes {
		h.tooLarge(c)
		return
	}

	doc := models.Document{
		Filename: SanitizeFilename(header.Filename, format),
		Format:   format,
		Data:     data,
	}
	profileKey := c.PostForm("job_profile")

	resp, err := h.analyzer.Run(c.Request.Context(), doc, profileKey)
	if errors.Is(err, analysis.ErrExtractionEmpty) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Could not extract text from the resume",
			Code:  http.StatusBadRequest,
		})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("filename", doc.Filename).Msg("resume analysis failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Error processing resume",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ResumeHandler) tooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
		Error:   "File too large",
		Code:    http.StatusRequestEntityTooLarge,
		Details: fmt.Sprintf("maximum size is %d bytes", h.maxBytes),
	})
}

// SanitizeFilename keeps the base name of an upload with unsafe characters replaced
// A name that sanitizes to nothing becomes "resume.<ext>"
func SanitizeFilename(name string, format models.DocumentFormat) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" || !strings.Contains(name, ".") {
		return "resume." + string(format)
	}
	return name
}
