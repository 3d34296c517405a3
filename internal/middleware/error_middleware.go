package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/emrekrt/placementhub/internal/app/models/dto"
	"github.com/emrekrt/placementhub/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses. Controllers call it
// for every non-nil service error so the status code and error code for a
// given failure are decided in exactly one place.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := func(fallback string) string {
		if errors.As(err, &custom) && custom.Message != "" {
			return custom.Message
		}
		return fallback
	}
	detail := func(code dto.ErrorCode, fallback string) *dto.ErrorDetail {
		d := dto.NewErrorDetail(code, message(fallback))
		if errors.As(err, &custom) && custom.Details != nil {
			d = d.WithDetails(custom.Details)
		}
		return d
	}

	switch {
	// Apply-path rejections
	case errors.Is(err, apperrors.ErrNotEligible):
		c.JSON(403, dto.APIResponse{
			Error: detail(dto.ErrorCodeNotEligible, "You do not meet the eligibility criteria for this drive"),
		})
	case errors.Is(err, apperrors.ErrWindowClosed):
		c.JSON(409, dto.APIResponse{
			Error: detail(dto.ErrorCodeWindowClosed, "The application window for this drive has closed"),
		})
	case errors.Is(err, apperrors.ErrAlreadyApplied):
		c.JSON(409, dto.APIResponse{
			Error: detail(dto.ErrorCodeAlreadyApplied, "You have already applied to this drive"),
		})

	// Selection round errors
	case errors.Is(err, apperrors.ErrInvalidRoundTransition):
		c.JSON(409, dto.APIResponse{
			Error: detail(dto.ErrorCodeInvalidRoundTransition, "Invalid round status transition"),
		})
	case errors.Is(err, apperrors.ErrStudentNotInPool):
		c.JSON(400, dto.APIResponse{
			Error: detail(dto.ErrorCodeStudentNotInPool, "A selected student is not in the round's candidate pool"),
		})

	// Missing resources
	case errors.Is(err, apperrors.ErrDriveNotFound),
		errors.Is(err, apperrors.ErrRoundNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.APIResponse{
			Error: detail(dto.ErrorCodeResourceNotFound, "Resource not found"),
		})

	// Authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.APIResponse{
			Error: detail(dto.ErrorCodeForbidden, "Permission denied"),
		})

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.APIResponse{
			Error: detail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})
	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(403, dto.APIResponse{
			Error: detail(dto.ErrorCodeForbidden, "Account is disabled"),
		})
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.APIResponse{
			Error: detail(dto.ErrorCodeExpiredToken, "Token expired"),
		})
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrTokenRevoked):
		c.JSON(401, dto.APIResponse{
			Error: detail(dto.ErrorCodeInvalidToken, "Invalid token"),
		})
	case errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(401, dto.APIResponse{
			Error: detail(dto.ErrorCodeTokenNotFound, "Token not found"),
		})

	// Validation and conflicts
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.APIResponse{
			Error: detail(dto.ErrorCodeValidationFailed, "Validation failed"),
		})
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.APIResponse{
			Error: detail(dto.ErrorCodeResourceAlreadyExists, "Email already exists"),
		})
	case errors.Is(err, apperrors.ErrProfileAlreadyExists):
		c.JSON(409, dto.APIResponse{
			Error: detail(dto.ErrorCodeResourceAlreadyExists, "Profile already exists"),
		})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.APIResponse{
			Error: detail(dto.ErrorCodeConflict, "The resource was modified concurrently, retry the request"),
		})

	default:
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}
