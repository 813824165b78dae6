package repositories

import (
	"context"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their (case-insensitive) email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// CountUsersByRole returns how many users hold the given role.
	CountUsersByRole(ctx context.Context, role domain.Role) (int64, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. A taken email yields apperrors.ErrDuplicateEmail.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
