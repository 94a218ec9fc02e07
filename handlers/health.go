package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resumeinsight/backend/models"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Health reports that the service is up
// @Summary Health check
// @Description Check if the server is running
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse "Server is healthy"
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Message:   "Resume Analysis API is running",
		Version:   Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
