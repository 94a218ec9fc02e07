package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/resumeinsight/backend/models"
)

// AuthClaimsKey is the gin context key holding the verified admin claims
const AuthClaimsKey = "auth_claims"

var (
	errMissingHeader = errors.New("authorization header required")
	errMalformed     = errors.New("invalid authorization header format")
)

// AdminMiddleware guards mutating routes with an admin bearer token
// With a nil service every request passes
func AdminMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtService == nil {
			c.Next()
			return
		}

		token, err := bearerToken(c.GetHeader("Authorization"))
		switch {
		case errors.Is(err, errMissingHeader):
			unauthorized(c, "Authorization header required", "")
			return
		case err != nil:
			unauthorized(c, "Invalid authorization header format", "")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			unauthorized(c, "Invalid or expired token", err.Error())
			return
		}

		c.Set(AuthClaimsKey, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingHeader
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", errMalformed
	}
	return strings.TrimSpace(token), nil
}

func unauthorized(c *gin.Context, message, details string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   message,
		Code:    http.StatusUnauthorized,
		Details: details,
	})
}

// GetAuthClaims returns the admin claims set by AdminMiddleware, or nil
func GetAuthClaims(c *gin.Context) *Claims {
	claims, _ := c.Get(AuthClaimsKey)
	admin, _ := claims.(*Claims)
	return admin
}
