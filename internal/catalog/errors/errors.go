package errors

import "errors"

var (
	ErrNotFound       = errors.New("listing not found")
	ErrInvalidKind    = errors.New("invalid listing kind")
	ErrLabelNotFound  = errors.New("label not found")
	ErrInvalidID      = errors.New("invalid id format")
	ErrDuplicateLabel = errors.New("label already exists")
)
