package domain

import "errors"

// Sentinel errors returned by the aggregate reducer. Callers match them with
// errors.Is; the wrapped message carries the offending entity.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateCategory = errors.New("category already exists")
)
