package validators

import (
	"github.com/go-playground/validator/v10"

	"github.com/chirper-app/backend/internal/apperrors"
)

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return apperrors.Validation("invalid_request", err.Error())
	}
	return nil
}
