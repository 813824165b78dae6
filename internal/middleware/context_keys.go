package middleware

import (
	"context"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// principalKey is the key used to store the authenticated caller in the request context.
const principalKey = contextKey("principal")

// WithPrincipal returns a copy of ctx carrying the authenticated caller.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipalFromCtx retrieves the authenticated caller from a context.
func GetPrincipalFromCtx(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

// GetPrincipal retrieves the authenticated caller of a Gin request.
// It returns false on routes that are not behind AuthMiddleware.
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	return GetPrincipalFromCtx(c.Request.Context())
}
