package crafts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	for _, s := range []Status{StatusUploading, StatusProcessing, StatusCompleted, StatusFailed} {
		require.True(t, IsValid(s), "expected %q to be valid", s)
	}
	require.False(t, IsValid(""))
	require.False(t, IsValid("ready"))
	require.False(t, IsValid("Uploading"))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"uploading to processing", StatusUploading, StatusProcessing, true},
		{"processing to completed", StatusProcessing, StatusCompleted, true},
		{"processing to failed", StatusProcessing, StatusFailed, true},
		{"uploading straight to completed", StatusUploading, StatusCompleted, false},
		{"uploading straight to failed", StatusUploading, StatusFailed, false},
		{"completed is terminal", StatusCompleted, StatusProcessing, false},
		{"failed is terminal", StatusFailed, StatusProcessing, false},
		{"failed cannot complete", StatusFailed, StatusCompleted, false},
		{"backwards", StatusProcessing, StatusUploading, false},
		{"unknown source", Status("ready"), StatusCompleted, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestValidateTransition(t *testing.T) {
	// Same-state writes are no-ops so terminal retries stay idempotent.
	require.NoError(t, ValidateTransition(StatusFailed, StatusFailed))
	require.NoError(t, ValidateTransition(StatusCompleted, StatusCompleted))

	require.NoError(t, ValidateTransition(StatusUploading, StatusProcessing))

	err := ValidateTransition(StatusUploading, StatusCompleted)
	require.ErrorIs(t, err, ErrInvalidTransition)

	err = ValidateTransition(StatusCompleted, StatusFailed)
	require.ErrorIs(t, err, ErrInvalidTransition)
}
