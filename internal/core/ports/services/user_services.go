package services

import (
	"context"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/SscSPs/car_parking_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// Register creates a new USER account. The email must not be taken.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserAuthSvc
}
