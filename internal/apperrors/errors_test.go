package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/car_parking_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestDomainErrorsWrapTheirCategory(t *testing.T) {
	cases := []struct {
		err      error
		category error
	}{
		{apperrors.ErrParkingNotFound, apperrors.ErrNotFound},
		{apperrors.ErrCarNotFound, apperrors.ErrNotFound},
		{apperrors.ErrDuplicateParkingCode, apperrors.ErrDuplicate},
		{apperrors.ErrDuplicateEmail, apperrors.ErrDuplicate},
		{apperrors.ErrInvalidCredentials, apperrors.ErrValidation},
		{apperrors.ErrCapacityBelowUsage, apperrors.ErrCapacity},
		{apperrors.ErrNoSlotsAvailable, apperrors.ErrCapacity},
		{apperrors.ErrHasActiveSessions, apperrors.ErrConflict},
		{apperrors.ErrSessionAlreadyOpen, apperrors.ErrConflict},
		{apperrors.ErrAlreadyExited, apperrors.ErrConflict},
		{apperrors.ErrAdminRequired, apperrors.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("service layer: %w", tc.err)
			assert.ErrorIs(t, wrapped, tc.err)
			assert.ErrorIs(t, wrapped, tc.category)
		})
	}
}

func TestClientMessage(t *testing.T) {
	msg, ok := apperrors.ClientMessage(fmt.Errorf("record entry: %w", apperrors.ErrNoSlotsAvailable))
	assert.True(t, ok)
	assert.Equal(t, "No available slots in this parking", msg)

	_, ok = apperrors.ClientMessage(errors.New("connection refused"))
	assert.False(t, ok)

	msg, ok = apperrors.ClientMessage(apperrors.NewValidationError("invalid %s", "startDate"))
	assert.True(t, ok)
	assert.Equal(t, "invalid startDate", msg)
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("tx closed")
	err := apperrors.NewAppError(500, "failed to commit transaction", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to commit transaction: tx closed", err.Error())
}
