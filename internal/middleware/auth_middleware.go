package middleware

import (
	"net/http"
	"strings"

	"portside_pos_backend/internal/models"
	"portside_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	ContextName     = "displayName"
	ContextUsername = "username"
	ContextRole     = "userRole"
)

// AuthMiddleware creates a Gin middleware for JWT authentication.
// The kitchen event stream cannot send headers from a browser EventSource,
// so a token query parameter is accepted as well.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid authorization header format. Use Bearer <token>", ""))
				return
			}
			tokenString = parts[1]
		} else {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", ""))
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", err.Error()))
			return
		}

		c.Set(ContextName, claims.Name)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		utils.SetLogField(c, "username", claims.Username)
		utils.SetLogField(c, "role", claims.Role)

		c.Next()
	}
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks if the user role (from JWT claims) is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleStr := c.GetString(ContextRole)
		if roleStr == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "User role not found in token claims", ""))
			return
		}

		for _, r := range allowedRoles {
			if strings.EqualFold(roleStr, r) {
				c.Next()
				return
			}
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
			"You do not have permission to access this resource. Required roles: "+strings.Join(allowedRoles, ", "), ""))
	}
}

// ManagementOnly lets the administrator and managers through.
func ManagementOnly() gin.HandlerFunc {
	return RoleAuthMiddleware(models.RoleAdmin, models.RoleManager)
}

// CurrentSession rebuilds the signed-in user from the request context.
func CurrentSession(c *gin.Context) models.Session {
	return models.Session{
		Name:     c.GetString(ContextName),
		Username: c.GetString(ContextUsername),
		Role:     c.GetString(ContextRole),
	}
}
