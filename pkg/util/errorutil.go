package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/menu-service/internal/domain"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// sentinelMappings pins each domain failure to its client-facing shape. The
// messages follow the API contract and must not drift.
var sentinelMappings = []struct {
	err     error
	code    string
	message string
	status  int
}{
	{domain.ErrUserExists, "CONFLICT", "User already exists", http.StatusConflict},
	{domain.ErrUserNotFound, "NOT_FOUND", "User not found", http.StatusNotFound},
	{domain.ErrInvalidCredentials, "BAD_CREDENTIALS", "User or password incorrect", http.StatusBadRequest},
	{domain.ErrEmailNotVerified, "EMAIL_NOT_VERIFIED", "Email not verified", http.StatusForbidden},
	{domain.ErrInvalidCode, "INVALID_CODE", "Code invalid", http.StatusBadRequest},
	{domain.ErrCodeExpired, "CODE_EXPIRED", "Code expired", http.StatusBadRequest},
	{domain.ErrInvalidToken, "INVALID_TOKEN", "Token invalid", http.StatusUnauthorized},
	{domain.ErrTokenExpired, "TOKEN_EXPIRED", "Token expired", http.StatusUnauthorized},
	{domain.ErrSessionNotFound, "NOT_FOUND", "Session not found", http.StatusNotFound},
	{domain.ErrSessionExpired, "SESSION_EXPIRED", "Session expired", http.StatusUnauthorized},
	{domain.ErrCategoryExists, "CONFLICT", "Category already exists", http.StatusConflict},
	{domain.ErrCategoryNotFound, "NOT_FOUND", "Category not found", http.StatusNotFound},
	{domain.ErrProductNotFound, "NOT_FOUND", "Product not found", http.StatusNotFound},
	{domain.ErrSlugTaken, "CONFLICT", "Slug already in use", http.StatusConflict},
}

// ToDomainError converts generic errors to DomainError. Unrecognized errors
// surface as 500s; persistence faults are not retried.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &DomainError{
			Code:       statusCode(fiberErr.Code),
			Message:    fiberErr.Message,
			HTTPStatus: fiberErr.Code,
			Err:        err,
		}
	}
	for _, m := range sentinelMappings {
		if errors.Is(err, m.err) {
			return &DomainError{Code: m.code, Message: m.message, HTTPStatus: m.status, Err: err}
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}

// statusCode renders an HTTP status as an error code, e.g. 400 -> BAD_REQUEST.
func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "INTERNAL_ERROR"
	}
	return strings.ReplaceAll(strings.ToUpper(text), " ", "_")
}
