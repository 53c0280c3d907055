// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vastra/catalog-backend/internal/apperrors"
	"github.com/vastra/catalog-backend/internal/models"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

func SuccessResponseWithMeta(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	if message == "" {
		message = "Invalid request"
	}
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func NotFoundResponse(c *gin.Context, resource string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", resource+" not found", nil)
}

func ConflictResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, "CONFLICT", message, nil)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", errors)
}

func PaginatedResponse(c *gin.Context, result PaginationResult) {
	SetPaginationHeaders(c, result)
	SuccessResponseWithMeta(c, result.Data, gin.H{
		"pagination": gin.H{
			"page":        result.Page,
			"limit":       result.Limit,
			"total":       result.Total,
			"total_pages": result.TotalPages,
		},
	})
}

// RespondError maps the service error taxonomy onto HTTP statuses so every
// handler reports failures the same way.
func RespondError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	var authErr *apperrors.AuthorizationError
	var conflictErr *apperrors.StateConflictError
	var notFoundErr *apperrors.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Message, gin.H{"field": validationErr.Field})
	case errors.As(err, &authErr):
		ForbiddenResponse(c, authErr.Message)
	case errors.As(err, &conflictErr):
		ConflictResponse(c, conflictErr.Error())
	case errors.As(err, &notFoundErr):
		NotFoundResponse(c, notFoundErr.Resource)
	default:
		InternalErrorResponse(c, err.Error())
	}
}

// ActorFromContext rebuilds the acting user from the values the auth
// middleware stored on the request.
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return models.Actor{}, false
	}
	idStr, ok := userIDStr.(string)
	if !ok {
		return models.Actor{}, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return models.Actor{}, false
	}

	actor := models.Actor{ID: id}
	if username, ok := c.Get("username"); ok {
		actor.Username, _ = username.(string)
	}
	if role, ok := c.Get("role"); ok {
		if roleStr, ok := role.(string); ok {
			actor.Role = models.UserRole(roleStr)
		}
	}
	return actor, true
}
