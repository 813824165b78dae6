package utils

import (
	"fmt"

	"github.com/SscSPs/car_parking_app/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
)

const (
	// passwordHashCost matches the cost the stored user hashes were created with.
	passwordHashCost = 10
	// maxPasswordBytes is the input limit of bcrypt. The request binding counts characters,
	// so a multi-byte password can pass it and still be too long here.
	maxPasswordBytes = 72
)

// HashPassword hashes a user password with bcrypt for the users.password_hash column.
func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", apperrors.NewValidationError("password must be at most %d bytes", maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches a stored hash. Malformed hashes never match.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
