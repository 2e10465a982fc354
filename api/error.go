package api

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var (
	ErrInternalServer         = errors.New("internal server error")
	ErrInsufficientPermission = errors.New("requires admin role")
	ErrCustomerNotFound       = errors.New("customer not found")
	ErrReminderNoteNotFound   = errors.New("reminder note not found")
	ErrNotificationNotFound   = errors.New("notification not found")

	errNotAPermissionStatus = errors.New("must be granted, denied or default")
)

type FailedValidationResponse struct {
	Message         string            `json:"message"`
	FieldViolations []*FieldViolation `json:"field_violations"`
}

type FieldViolation struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func fieldViolation(field string, err error) *FieldViolation {
	return &FieldViolation{
		Field:       field,
		Description: err.Error(),
	}
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}

func failedValidationError(violations []*FieldViolation) *FailedValidationResponse {
	return &FailedValidationResponse{
		Message:         "Invalid request parameters",
		FieldViolations: violations,
	}
}
