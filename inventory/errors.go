package inventory

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidAdjustment = errors.New("invalid inventory adjustment")
	ErrNoMatchingVariant = errors.New("no matching variant")
)
