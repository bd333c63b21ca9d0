package domain

import "fmt"

// The error taxonomy below covers every failure the kernel produces.
// Business-rule failures travel through Either chains as one of these
// types, never as panics across a package boundary.

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Invalid builds a ValidationError from a reason string.
func Invalid(reason string) error { return &ValidationError{Reason: reason} }

// Invalidf builds a ValidationError from a format string.
func Invalidf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a dangling id reference.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// NotFound builds a NotFoundError for the given resource kind and id.
func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// AvailabilityError reports missing inventory for the requested dates.
type AvailabilityError struct {
	Reason string
}

func (e *AvailabilityError) Error() string { return e.Reason }

// Unavailable builds an AvailabilityError from a reason string.
func Unavailable(reason string) error { return &AvailabilityError{Reason: reason} }

// PriceMismatchError reports a supplied total diverging from the computed
// one by more than the accepted tolerance.
type PriceMismatchError struct {
	Expected int
	Got      int
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("Price mismatch detected. Expected: %d, Got: %d", e.Expected, e.Got)
}

// ComputationError wraps an unexpected fault caught at a pipeline
// boundary. The underlying message is preserved verbatim.
type ComputationError struct {
	Cause error
}

func (e *ComputationError) Error() string { return e.Cause.Error() }

func (e *ComputationError) Unwrap() error { return e.Cause }

// Computation wraps err as a ComputationError, unless it already is one.
func Computation(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*ComputationError); ok {
		return err
	}
	return &ComputationError{Cause: err}
}
