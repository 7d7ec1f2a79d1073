package errors

import "errors"

var (
	ErrNotFound = errors.New("business not found")

	ErrCategoryNotFound = errors.New("business category not found")

	ErrInvalidID = errors.New("invalid business ID format")
)
