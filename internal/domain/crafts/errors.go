package crafts

import "errors"

var (
	ErrNotFound          = errors.New("craft not found")
	ErrConflict          = errors.New("craft already being processed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotOwner          = errors.New("caller does not own this craft")
	ErrInvalidArgument   = errors.New("invalid arguments")
)
