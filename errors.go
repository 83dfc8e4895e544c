package optimum

import (
	"fmt"

	"github.com/pkg/errors"
)

// NotInitializedError is returned when a solver required a state field
// (typically the parameter) that the caller never set via Configure.
type NotInitializedError struct {
	Field string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("optimum: state field %q was never initialized", e.Field)
}

// NewNotInitializedError wraps a NotInitializedError with a stack trace.
func NewNotInitializedError(field string) error {
	return errors.WithStack(&NotInitializedError{Field: field})
}

// ConditionViolatedError signals a broken algorithmic precondition, such as
// a line search that cannot satisfy its acceptance condition or a
// non-descent search direction. When NextIter returns one and the state
// already carries a finite best cost, Executor.Run converts it into a
// graceful SolverExit termination; otherwise it propagates.
type ConditionViolatedError struct {
	Condition string
}

func (e *ConditionViolatedError) Error() string {
	return fmt.Sprintf("optimum: condition violated: %s", e.Condition)
}

// NewConditionViolatedError wraps a ConditionViolatedError with a stack trace.
func NewConditionViolatedError(condition string) error {
	return errors.WithStack(&ConditionViolatedError{Condition: condition})
}

// InverseError is raised by the linalg layer when a matrix inversion is
// attempted on a singular or non-square matrix.
type InverseError struct {
	Reason string
}

func (e *InverseError) Error() string {
	return fmt.Sprintf("optimum: matrix inversion failed: %s", e.Reason)
}

// NewInverseError wraps an InverseError with a stack trace.
func NewInverseError(reason string) error {
	return errors.WithStack(&InverseError{Reason: reason})
}

// DimensionMismatchError is raised by math operations when operand
// dimensions are incompatible.
type DimensionMismatchError struct {
	Op       string
	Expected int
	Got      int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("optimum: %s: dimension mismatch, expected %d got %d", e.Op, e.Expected, e.Got)
}

// NewDimensionMismatchError wraps a DimensionMismatchError with a stack trace.
func NewDimensionMismatchError(op string, expected, got int) error {
	return errors.WithStack(&DimensionMismatchError{Op: op, Expected: expected, Got: got})
}

// MathError wraps any other failure surfaced by a math capability
// implementation (e.g. an external linear-algebra backend's own error).
type MathError struct {
	Cause error
}

func (e *MathError) Error() string {
	return fmt.Sprintf("optimum: math error: %v", e.Cause)
}

func (e *MathError) Unwrap() error { return e.Cause }

// NewMathError wraps cause as a MathError, adding a stack trace.
func NewMathError(cause error) error {
	return errors.WithStack(&MathError{Cause: cause})
}

// IOError wraps a failure from an Observer or Checkpoint sink. Errors of
// this kind always propagate out of Executor.Run and abort the run.
type IOError struct {
	Op    string
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("optimum: io error during %s: %v", e.Op, e.Cause)
}

func (e *IOError) Unwrap() error { return e.Cause }

// NewIOError wraps cause as an IOError, adding a stack trace.
func NewIOError(op string, cause error) error {
	return errors.WithStack(&IOError{Op: op, Cause: cause})
}
