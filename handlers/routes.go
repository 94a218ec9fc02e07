package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/resumeinsight/backend/auth"
)

// RegisterRoutes mounts the API routes on the /api group. jwtService may be nil
func RegisterRoutes(api *gin.RouterGroup, resumes *ResumeHandler, profiles *ProfileHandler, jwtService *auth.JWTService) {
	admin := auth.AdminMiddleware(jwtService)

	api.GET("/health", Health)
	api.POST("/analyze-resume", resumes.AnalyzeResume)

	api.GET("/job-profiles", profiles.ListProfiles)
	api.GET("/job-profiles/:id", profiles.GetProfile)
	api.POST("/job-profiles", admin, profiles.CreateProfile)
	api.DELETE("/job-profiles/:id", admin, profiles.DeleteProfile)
}
