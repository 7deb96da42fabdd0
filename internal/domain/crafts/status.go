package crafts

import "fmt"

type Status string

const (
	StatusUploading  Status = "uploading"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsValid reports whether s is one of the four defined lifecycle values.
func IsValid(s Status) bool {
	switch s {
	case StatusUploading, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// CanTransition encodes the lifecycle table:
// uploading -> processing, processing -> completed|failed.
// completed and failed are terminal.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusUploading:
		return to == StatusProcessing
	case StatusProcessing:
		return to == StatusCompleted || to == StatusFailed
	default:
		return false
	}
}

// ValidateTransition rejects illegal status writes. A same-state write is a
// no-op, not an error, so retried terminal writes stay idempotent.
func ValidateTransition(from, to Status) error {
	if from == to {
		return nil
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
