package common

import (
	validator "github.com/go-playground/validator/v10"
)

// CodeInvalidInput marks validation failures surfaced at the boundary layer.
const CodeInvalidInput = "INVALID_INPUT"

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs struct-tag validation and wraps failures in an AppError.
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return NewAppError(CodeInvalidInput, "invalid input", err)
	}
	return nil
}
