package engine

import "errors"

// Sentinel errors for the three rejection categories. Operations wrap these
// with context; callers match with errors.Is. Every rejection leaves the
// input session unchanged.
var (
	// ErrPhaseMismatch reports an operation invoked outside its legal phase.
	ErrPhaseMismatch = errors.New("phase mismatch")
	// ErrUnknownUnit reports a unit id not present in the session.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrLifecycleViolation reports an operation against a session in the
	// wrong lifecycle status.
	ErrLifecycleViolation = errors.New("lifecycle violation")
	// ErrInvalidInput reports a declaration that fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyLocked reports a declaration against a unit whose lock for
	// the phase is already set.
	ErrAlreadyLocked = errors.New("already locked")
	// ErrAlreadyResolved reports a resolution step invoked twice in one phase.
	ErrAlreadyResolved = errors.New("already resolved")
	// ErrUnitIncapacitated reports a declaration for a destroyed, shut-down,
	// or unconscious unit.
	ErrUnitIncapacitated = errors.New("unit incapacitated")
	// ErrOutOfRange reports a weapon attack against a target beyond the
	// weapon's long range.
	ErrOutOfRange = errors.New("target out of range")
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an error outside the rejection taxonomy.
	CodeUnknown Code = "UNKNOWN"

	CodePhaseMismatch      Code = "PHASE_MISMATCH"
	CodeUnknownUnit        Code = "UNKNOWN_UNIT"
	CodeLifecycleViolation Code = "LIFECYCLE_VIOLATION"
	CodeInvalidInput       Code = "INVALID_INPUT"
	CodeAlreadyLocked      Code = "ALREADY_LOCKED"
	CodeAlreadyResolved    Code = "ALREADY_RESOLVED"
	CodeUnitIncapacitated  Code = "UNIT_INCAPACITATED"
	CodeOutOfRange         Code = "OUT_OF_RANGE"
)

// CodeOf maps a rejection to its machine-readable code. Errors outside the
// sentinel set map to CodeUnknown.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return CodeUnknown
	case errors.Is(err, ErrPhaseMismatch):
		return CodePhaseMismatch
	case errors.Is(err, ErrUnknownUnit):
		return CodeUnknownUnit
	case errors.Is(err, ErrLifecycleViolation):
		return CodeLifecycleViolation
	case errors.Is(err, ErrAlreadyLocked):
		return CodeAlreadyLocked
	case errors.Is(err, ErrAlreadyResolved):
		return CodeAlreadyResolved
	case errors.Is(err, ErrUnitIncapacitated):
		return CodeUnitIncapacitated
	case errors.Is(err, ErrOutOfRange):
		return CodeOutOfRange
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	}
	return CodeUnknown
}
