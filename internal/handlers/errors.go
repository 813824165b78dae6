package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/car_parking_app/internal/apperrors"
	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/SscSPs/car_parking_app/internal/dto"
	"github.com/SscSPs/car_parking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps an error category to its HTTP status code.
func statusFor(err error) int {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrCapacity):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &appErr) && appErr.Code != 0:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a {"message"} body. Domain errors keep their own message;
// anything else is logged and answered with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)

	if msg, ok := apperrors.ClientMessage(err); ok {
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("reason", msg))
		c.JSON(status, dto.MessageResponse{Message: msg})
		return
	}

	switch status {
	case http.StatusInternalServerError:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, dto.MessageResponse{Message: fallback})
	case http.StatusGatewayTimeout:
		logger.Warn("Request timed out", slog.String("error", err.Error()))
		c.JSON(status, dto.MessageResponse{Message: "Request timed out"})
	default:
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
		c.JSON(status, dto.MessageResponse{Message: err.Error()})
	}
}

// requirePrincipal returns the authenticated caller, answering 401 when there is none.
func requirePrincipal(c *gin.Context) (domain.Principal, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Principal not found in context")
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Access denied. No token provided."})
		return domain.Principal{}, false
	}
	return principal, true
}
