package validator

import (
	"errors"

	"tripdey/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type ReviewValidator struct {
	validate *validator.Validate
}

func NewReviewValidator() *ReviewValidator {
	return &ReviewValidator{
		validate: validator.New(),
	}
}

func (v *ReviewValidator) Validate(input any) error {
	if err := v.validate.Struct(input); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}
	return nil
}
