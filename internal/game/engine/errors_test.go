package engine

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		want Code
	}{
		{nil, CodeUnknown},
		{errors.New("plain"), CodeUnknown},
		{ErrPhaseMismatch, CodePhaseMismatch},
		{ErrUnknownUnit, CodeUnknownUnit},
		{ErrLifecycleViolation, CodeLifecycleViolation},
		{ErrInvalidInput, CodeInvalidInput},
		{ErrAlreadyLocked, CodeAlreadyLocked},
		{ErrAlreadyResolved, CodeAlreadyResolved},
		{ErrUnitIncapacitated, CodeUnitIncapacitated},
		{ErrOutOfRange, CodeOutOfRange},
	}
	for _, tt := range tests {
		if got := CodeOf(tt.err); got != tt.want {
			t.Fatalf("CodeOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestCodeOfWrappedError(t *testing.T) {
	err := fmt.Errorf("declare movement: unit archer: %w", ErrAlreadyLocked)
	if got := CodeOf(err); got != CodeAlreadyLocked {
		t.Fatalf("CodeOf(wrapped) = %s, want %s", got, CodeAlreadyLocked)
	}
}

func TestCodeOfRangeBeatsInvalidInput(t *testing.T) {
	// Range rejections wrap both sentinels; the more specific code wins.
	err := fmt.Errorf("declare attack: %w: %w", ErrOutOfRange, ErrInvalidInput)
	if got := CodeOf(err); got != CodeOutOfRange {
		t.Fatalf("CodeOf(range) = %s, want %s", got, CodeOutOfRange)
	}
}
