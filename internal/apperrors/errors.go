package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request is inconsistent with the current state of a resource.
var ErrConflict = errors.New("conflicting resource state")

// ErrCapacity indicates that a parking capacity rule would be broken.
var ErrCapacity = errors.New("capacity violation")

// ErrUnauthorized indicates missing or unusable credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller is authenticated but lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrSlotCounterFull indicates a slot release on a parking whose counter is already at its total.
// It signals counter drift and is never shown to clients.
var ErrSlotCounterFull = errors.New("available slots already equal total slots")

// DomainError is a client-facing failure. Msg is safe to return to API callers and
// Category is one of the sentinels above.
type DomainError struct {
	Category error
	Msg      string
}

func (e *DomainError) Error() string { return e.Msg }

func (e *DomainError) Unwrap() error { return e.Category }

func newDomainError(category error, msg string) *DomainError {
	return &DomainError{Category: category, Msg: msg}
}

var (
	ErrParkingNotFound      = newDomainError(ErrNotFound, "Parking not found")
	ErrCarNotFound          = newDomainError(ErrNotFound, "Car not found")
	ErrUserNotFound         = newDomainError(ErrNotFound, "User not found")
	ErrDuplicateParkingCode = newDomainError(ErrDuplicate, "Parking with this code already exists")
	ErrDuplicateEmail       = newDomainError(ErrDuplicate, "User already exists with this email")
	ErrInvalidCredentials   = newDomainError(ErrValidation, "Invalid email or password")
	ErrInvalidDateRange     = newDomainError(ErrValidation, "Start date must not be after end date")
	ErrValueOutOfRange      = newDomainError(ErrValidation, "A value is too long or out of range")
	ErrCapacityBelowUsage   = newDomainError(ErrCapacity, "Cannot reduce total slots below currently used slots")
	ErrNoSlotsAvailable     = newDomainError(ErrCapacity, "No available slots in this parking")
	ErrHasActiveSessions    = newDomainError(ErrConflict, "Cannot delete parking with active cars")
	ErrSessionAlreadyOpen   = newDomainError(ErrConflict, "Car is already in the parking")
	ErrAlreadyExited        = newDomainError(ErrConflict, "Car has already exited")
	ErrAdminRequired        = newDomainError(ErrForbidden, "Admin access required")
)

// NewValidationError builds an ad-hoc validation failure with a client-facing message.
func NewValidationError(format string, args ...any) error {
	return newDomainError(ErrValidation, fmt.Sprintf(format, args...))
}

// AppError carries a status code alongside a wrapped lower-level failure.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ClientMessage returns the message of the outermost DomainError in err's chain.
func ClientMessage(err error) (string, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Msg, true
	}
	return "", false
}
