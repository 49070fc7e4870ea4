package dto

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/menu-service/pkg/util"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct-tag validation and converts failures into a
// client-facing validation error with per-field details. Handlers call it
// before any request value reaches the service layer.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return apperrors.NewValidationError("invalid payload", details)
}
