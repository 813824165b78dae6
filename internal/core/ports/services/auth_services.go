package services

import (
	"context"
	"time"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken signs an access token carrying the user's id and role.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
