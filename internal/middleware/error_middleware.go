package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/app/repositories"
	"github.com/yigit/hostelsphere/internal/pkg/apperrors"
	"github.com/yigit/hostelsphere/internal/pkg/logger"
)

// apiError pairs a sentinel with its HTTP status and error code
type apiError struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// Checked in order; the first match wins
var apiErrors = []apiError{
	{apperrors.ErrNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrRoomFull, http.StatusConflict, dto.ErrorCodeRoomFull, "Room is full"},
	{apperrors.ErrRoomUnderMaintenance, http.StatusConflict, dto.ErrorCodeRoomMaintenance, "Room is under maintenance"},
	{apperrors.ErrDuplicateID, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},
	{apperrors.ErrInvalidCapacity, http.StatusBadRequest, dto.ErrorCodeInvalidCapacity, "Invalid room capacity"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{repositories.ErrStorageUnavailable, http.StatusServiceUnavailable, dto.ErrorCodeDatabaseError, "Storage unavailable"},
}

// --- Central Error Handling Middleware/Function ---

// HandleAPIError maps a service error to its HTTP response
func HandleAPIError(c *gin.Context, err error) {
	for _, e := range apiErrors {
		if !errors.Is(err, e.target) {
			continue
		}
		detail := dto.NewErrorDetail(e.code, e.message)
		if e.status < http.StatusInternalServerError {
			detail = detail.WithDetails(err.Error())
		} else {
			logger.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		}
		c.JSON(e.status, dto.APIResponse{Error: detail, Timestamp: time.Now()})
		return
	}

	// Handle unknown errors
	logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
	c.JSON(http.StatusInternalServerError, dto.APIResponse{
		Error:     dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		Timestamp: time.Now(),
	})
}
