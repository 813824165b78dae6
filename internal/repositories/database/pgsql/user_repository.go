package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/car_parking_app/internal/apperrors"
	"github.com/SscSPs/car_parking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_parking_app/internal/core/ports/repositories"
	"github.com/SscSPs/car_parking_app/internal/models"
	"github.com/SscSPs/car_parking_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const userColumns = `user_id, first_name, last_name, email, password_hash, role, created_at, last_updated_at`

type PgxUserRepository struct {
	db DB
}

func newPgxUserRepository(db DB) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	modelUser := mapping.ToModelUser(user)
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.db.Exec(ctx, query,
		modelUser.UserID,
		modelUser.FirstName,
		modelUser.LastName,
		modelUser.Email,
		modelUser.PasswordHash,
		modelUser.Role,
		modelUser.CreatedAt,
		modelUser.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateEmail
		}
		if isValueOutOfRange(err) {
			return apperrors.ErrValueOutOfRange
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg string) (*domain.User, error) {
	var modelUser models.User
	err := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where+`;`, arg).Scan(
		&modelUser.UserID,
		&modelUser.FirstName,
		&modelUser.LastName,
		&modelUser.Email,
		&modelUser.PasswordHash,
		&modelUser.Role,
		&modelUser.CreatedAt,
		&modelUser.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	domainUser := mapping.ToDomainUser(modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if !isValidID(userID) {
		return nil, apperrors.ErrUserNotFound
	}
	return r.findOne(ctx, "user_id = $1", userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "LOWER(email) = LOWER($1)", email)
}

func (r *PgxUserRepository) CountUsersByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1;`, string(role)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users with role %s: %w", role, err)
	}
	return count, nil
}
