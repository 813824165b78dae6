package middleware

import (
	"net/http"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// RequireRole rejects requests whose principal does not hold role. It must run after AuthMiddleware.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok || principal.Role != role {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role check failed", "required_role", string(role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied. " + roleName(role) + " role required."})
			return
		}
		c.Next()
	}
}

func roleName(role domain.Role) string {
	if role == domain.RoleAdmin {
		return "Admin"
	}
	return string(role)
}
