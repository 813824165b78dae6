package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/SscSPs/car_parking_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware creates a Gin middleware handler that validates bearer JWT tokens
// and stores the caller as a domain.Principal in the request context.
// A missing token is answered with 401, a token that fails verification with 403.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logger.Warn("Authorization header missing or malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			msg := "Invalid token."
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired."
			}
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": msg})
			return
		}

		principal := domain.Principal{UserID: claims.UserID, Role: domain.Role(claims.Role)}
		if principal.UserID == "" || !principal.Role.IsValid() {
			logger.Warn("Token claims incomplete", slog.String("role", claims.Role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid token."})
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", principal.UserID))
		ctx := WithLogger(WithPrincipal(c.Request.Context(), principal), enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
