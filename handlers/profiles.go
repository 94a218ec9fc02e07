package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/resumeinsight/backend/logger"
	"github.com/resumeinsight/backend/models"
	"github.com/resumeinsight/backend/profiles"
)

// ProfileRegistry is the job profile store used by the routes
type ProfileRegistry interface {
	List() []models.ProfileSummary
	Get(id string) (models.JobProfile, error)
	Create(ctx context.Context, name string) (models.ProfileSummary, error)
	Delete(id string) error
}

// ProfileHandler handles job profile requests
type ProfileHandler struct {
	registry ProfileRegistry
	logger   zerolog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(registry ProfileRegistry) *ProfileHandler {
	return &ProfileHandler{
		registry: registry,
		logger:   logger.Component("handlers.profiles"),
	}
}

// ListProfiles lists the available job profiles
// @Summary List job profiles
// @Description List the id and name of every job profile, built-in ones first
// @Tags Job Profiles
// @Produce json
// @Success 200 {array} models.ProfileSummary "Job profiles"
// @Router /job-profiles [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.List())
}

// GetProfile returns one job profile with its skill lists
// @Summary Get a job profile
// @Tags Job Profiles
// @Produce json
// @Param id path string true "Profile id"
// @Success 200 {object} models.JobProfile "Job profile"
// @Failure 404 {object} models.ErrorResponse "Profile not found"
// @Router /job-profiles/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.registry.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Profile not found",
			Code:  http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// CreateProfile creates a job profile with AI generated skills
// @Summary Create a job profile
// @Description Create a job profile from a role name. The skill and keyword lists are generated by the model; they are empty when generation fails
// @Tags Job Profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateProfileRequest true "Profile name"
// @Success 201 {object} models.CreateProfileResponse "Profile created"
// @Failure 400 {object} models.ErrorResponse "Profile name is required"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 409 {object} models.ErrorResponse "Profile already exists"
// @Router /job-profiles [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req models.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Profile name is required",
			Code:  http.StatusBadRequest,
		})
		return
	}

	summary, err := h.registry.Create(c.Request.Context(), req.Name)
	switch {
	case errors.Is(err, profiles.ErrDuplicateProfile):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error: "Profile with this name already exists",
			Code:  http.StatusConflict,
		})
		return
	case errors.Is(err, profiles.ErrInvalidProfileName):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Profile name is required",
			Code:  http.StatusBadRequest,
		})
		return
	case err != nil:
		h.logger.Error().Err(err).Str("name", req.Name).Msg("profile creation failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Error creating profile",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.CreateProfileResponse{
		ID:      summary.ID,
		Name:    summary.Name,
		Message: "Profile created successfully with AI-generated skills",
	})
}

// DeleteProfile deletes a custom job profile
// @Summary Delete a job profile
// @Description Delete a custom job profile. Built-in profiles cannot be deleted
// @Tags Job Profiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile id"
// @Success 200 {object} models.MessageResponse "Profile deleted"
// @Failure 400 {object} models.ErrorResponse "Built-in profile"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Profile not found"
// @Router /job-profiles/{id} [delete]
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	err := h.registry.Delete(c.Param("id"))
	switch {
	case errors.Is(err, profiles.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Profile not found",
			Code:  http.StatusNotFound,
		})
	case errors.Is(err, profiles.ErrProtectedProfile):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Cannot delete default profiles",
			Code:  http.StatusBadRequest,
		})
	case err != nil:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Error deleting profile",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
	default:
		c.JSON(http.StatusOK, models.MessageResponse{Message: "Profile deleted successfully"})
	}
}
