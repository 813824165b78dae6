package mapping

import (
	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/SscSPs/car_parking_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:        d.UserID,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		PasswordHash:  d.PasswordHash,
		Role:          string(d.Role),
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:        m.UserID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		Role:          domain.Role(m.Role),
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}
