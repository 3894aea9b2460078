package diffraction

import (
	"errors"
	"fmt"
	"strconv"
)

// Domain errors for optical components and the simulation orchestrator.
var (
	// ErrInvalidParameter indicates a non-physical field value such as a
	// non-positive wavelength or an intensity outside [0, 1].
	ErrInvalidParameter = errors.New("diffraction: invalid parameter")

	// ErrInvalidGeometry indicates a zero aperture or screen distance.
	ErrInvalidGeometry = errors.New("diffraction: invalid geometry")

	// ErrPreconditionNotMet indicates an operation was requested before the
	// simulation had every component it needs.
	ErrPreconditionNotMet = errors.New("diffraction: precondition not met")
)

// ParameterError wraps a domain error with the operation and field involved.
type ParameterError struct {
	Op    string
	Field string
	Value float64
	Err   error
}

func (e *ParameterError) Error() string {
	return e.Op + ": " + e.Field + "=" + strconv.FormatFloat(e.Value, 'g', -1, 64) + ": " + e.Err.Error()
}

func (e *ParameterError) Unwrap() error {
	return e.Err
}

func invalidParam(op, field string, v float64) error {
	return &ParameterError{Op: op, Field: field, Value: v, Err: ErrInvalidParameter}
}

func invalidGeometry(op, field string, v float64) error {
	return &ParameterError{Op: op, Field: field, Value: v, Err: ErrInvalidGeometry}
}

func preconditionf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrPreconditionNotMet}, args...)...)
}
