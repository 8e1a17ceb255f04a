// Package errors holds the error type use cases return to the HTTP layer.
// The layer maps an *AppError to a status code without looking at storage
// or domain errors.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeInternal     ErrorType = "internal_error"
)

var statusByType = map[ErrorType]int{
	ErrorTypeValidation:   http.StatusBadRequest,
	ErrorTypeNotFound:     http.StatusNotFound,
	ErrorTypeUnauthorized: http.StatusUnauthorized,
	ErrorTypeInternal:     http.StatusInternalServerError,
}

// AppError is a client-facing failure. Details is an optional hint such as
// the offending field; cause is kept for logs and never rendered.
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`

	cause error
}

func (e *AppError) Error() string {
	if e.Details == "" {
		return string(e.Type) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
}

func (e *AppError) Unwrap() error { return e.cause }

func build(t ErrorType, message string, details []string) *AppError {
	e := &AppError{Type: t, Message: message, Code: statusByType[t]}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

func NewValidationError(message string, details ...string) *AppError {
	return build(ErrorTypeValidation, message, details)
}

func NewNotFoundError(message string, details ...string) *AppError {
	return build(ErrorTypeNotFound, message, details)
}

func NewUnauthorizedError(message string, details ...string) *AppError {
	return build(ErrorTypeUnauthorized, message, details)
}

func NewInternalError(message string, details ...string) *AppError {
	return build(ErrorTypeInternal, message, details)
}

// WrapInternal returns an internal error whose cause stays out of responses.
func WrapInternal(cause error, message string) *AppError {
	e := build(ErrorTypeInternal, message, nil)
	e.cause = cause
	return e
}

// GetAppError returns the first *AppError in err's chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func IsAppError(err error) bool { return GetAppError(err) != nil }

func hasType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

func IsNotFoundError(err error) bool   { return hasType(err, ErrorTypeNotFound) }
func IsValidationError(err error) bool { return hasType(err, ErrorTypeValidation) }
func IsInternalError(err error) bool   { return hasType(err, ErrorTypeInternal) }

var duplicateMarkers = []string{
	"Duplicate entry",            // mysql
	"violates unique constraint", // postgres
	"UNIQUE constraint failed",   // sqlite
}

// IsDuplicateError reports a unique-key violation from any supported driver.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	for _, m := range duplicateMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
