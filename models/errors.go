package models

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound   = "NOT_FOUND"
	CodeForbidden  = "FORBIDDEN"
	CodeValidation = "VALIDATION_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// AppError carries the HTTP status it should be reported with
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
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

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s id %v doesn't exist.", resource, id),
	}
}

func NewForbiddenError() *AppError {
	return &AppError{
		Status:  http.StatusForbidden,
		Code:    CodeForbidden,
		Message: "You don't have the permission to access the requested resource.",
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Status:  http.StatusOK, // the form is re-rendered, not rejected
		Code:    CodeValidation,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// HasCode reports whether err is (or wraps) an *AppError with the given code
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool  { return HasCode(err, CodeNotFound) }
func IsForbidden(err error) bool { return HasCode(err, CodeForbidden) }
