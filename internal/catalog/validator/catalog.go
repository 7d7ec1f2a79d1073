package validator

import (
	"errors"

	"tripdey/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type CatalogValidator struct {
	validate *validator.Validate
}

func NewCatalogValidator() *CatalogValidator {
	return &CatalogValidator{
		validate: validator.New(),
	}
}

func (v *CatalogValidator) Validate(input any) error {
	if err := v.validate.Struct(input); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}
	return nil
}
