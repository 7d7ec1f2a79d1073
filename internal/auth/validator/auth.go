package validator

import (
	"errors"

	"tripdey/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type AuthValidator struct {
	validate *validator.Validate
}

func NewAuthValidator() *AuthValidator {
	return &AuthValidator{
		validate: validator.New(),
	}
}

// Validate runs struct tag validation on any of the auth input shapes.
func (v *AuthValidator) Validate(input any) error {
	if err := v.validate.Struct(input); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}
	return nil
}
