package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/car_parking_app/internal/apperrors"
	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/SscSPs/car_parking_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// RequireAdmin fails with apperrors.ErrAdminRequired unless principal is an administrator.
func (s *BaseService) RequireAdmin(ctx context.Context, principal domain.Principal, action string) error {
	if principal.IsAdmin() {
		return nil
	}
	s.LogWarn(ctx, "Admin role required",
		slog.String("user_id", principal.UserID),
		slog.String("action", action))
	return apperrors.ErrAdminRequired
}

// Clock supplies the current time. Tests replace it to make billing deterministic.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now()
}
