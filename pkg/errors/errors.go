// Package errors defines the error taxonomy shared by the stepwise
// selection library.
//
// Numeric code distinguishes three failure families:
//
//   - sentinel errors (ErrEmptyData, ErrSingularMatrix, ErrNotConverged)
//     checked with errors.Is
//   - typed errors (DimensionError, ValueError, NotFittedError,
//     ConvergenceError) inspected with errors.As
//   - wrapped causes built on github.com/cockroachdb/errors so that call
//     chains keep full context and stack traces
//
// Recover converts panics out of gonum routines into ordinary errors so a
// failed fit aborts the selection run instead of the process.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors used across the library.
var (
	// ErrEmptyData indicates an empty design matrix or response vector.
	ErrEmptyData = errors.New("empty data")

	// ErrSingularMatrix indicates a rank-deficient design matrix whose
	// normal equations cannot be solved.
	ErrSingularMatrix = errors.New("singular matrix")

	// ErrNotConverged indicates an iterative fit exhausted its iteration
	// budget without meeting tolerance.
	ErrNotConverged = errors.New("did not converge")
)

// ModelError wraps a sentinel with the operation that raised it.
type ModelError struct {
	Op      string
	Message string
	Cause   error
}

// NewModelError creates a ModelError wrapping cause.
func NewModelError(op, message string, cause error) *ModelError {
	return &ModelError{Op: op, Message: message, Cause: cause}
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
}

func (e *ModelError) Unwrap() error { return e.Cause }

// DimensionError indicates mismatched dimensions between two inputs.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

// NewDimensionError creates a DimensionError for the given operation.
// Axis 0 is rows, axis 1 is columns.
func NewDimensionError(op string, expected, got, axis int) *DimensionError {
	return &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: dimension mismatch on axis %d: expected %d, got %d",
		e.Op, e.Axis, e.Expected, e.Got)
}

// ValueError indicates an invalid argument value.
type ValueError struct {
	Op      string
	Message string
}

// NewValueError creates a ValueError for the given operation.
func NewValueError(op, message string) *ValueError {
	return &ValueError{Op: op, Message: message}
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// NotFittedError indicates a model was used before Fit succeeded.
type NotFittedError struct {
	ModelName string
	Method    string
}

// NewNotFittedError creates a NotFittedError.
func NewNotFittedError(modelName, method string) *NotFittedError {
	return &NotFittedError{ModelName: modelName, Method: method}
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("%s.%s: model is not fitted; call Fit first", e.ModelName, e.Method)
}

// ConvergenceError indicates an iterative solver stopped at its iteration
// limit. It unwraps to ErrNotConverged.
type ConvergenceError struct {
	Op         string
	Iterations int
}

// NewConvergenceError creates a ConvergenceError.
func NewConvergenceError(op string, iterations int) *ConvergenceError {
	return &ConvergenceError{Op: op, Iterations: iterations}
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: %v after %d iterations", e.Op, ErrNotConverged, e.Iterations)
}

func (e *ConvergenceError) Unwrap() error { return ErrNotConverged }

// Wrap annotates err with a message, preserving the chain.
// Returns nil when err is nil.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message, preserving the chain.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Recover converts a panic into an error assigned to *errp, tagged with the
// operation name. Intended as a deferred guard around gonum-heavy code:
//
//	func (m *OLS) Fit(...) (err error) {
//		defer sterrors.Recover(&err, "OLS.Fit")
//		...
//	}
func Recover(errp *error, op string) {
	if r := recover(); r != nil {
		*errp = errors.Newf("%s: panic: %v", op, r)
	}
}
