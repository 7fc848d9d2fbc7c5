package engine

import (
	"errors"
	"fmt"
)

// InputError reports a malformed run request.
//
// Input errors are always returned synchronously from Start, StartFunc or
// Lookup, never deferred into a step sequence. Once a Run exists it cannot
// fail.
type InputError struct {
	// Code identifies the error category.
	Code InputErrorCode

	// Message is a human-readable description.
	Message string

	// Algorithm is the requested algorithm name, if known.
	Algorithm string

	// Index is the offending element position for ErrCodeUnordered, else -1.
	Index int
}

// InputErrorCode categorizes input errors.
type InputErrorCode string

const (
	// ErrCodeUnknownAlgorithm indicates a registry lookup for a name that is not registered.
	ErrCodeUnknownAlgorithm InputErrorCode = "UNKNOWN_ALGORITHM"

	// ErrCodeUnordered indicates an element with no place in a total order (NaN).
	ErrCodeUnordered InputErrorCode = "UNORDERED_ELEMENT"

	// ErrCodeNilCompare indicates StartFunc was called without a comparison function.
	ErrCodeNilCompare InputErrorCode = "NIL_COMPARE"
)

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Algorithm != "" {
		return fmt.Sprintf("%s: %s (algorithm=%s)", e.Code, e.Message, e.Algorithm)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnknownAlgorithm returns true if err is an unknown-algorithm lookup failure.
// Uses errors.As to handle wrapped errors.
func IsUnknownAlgorithm(err error) bool {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Code == ErrCodeUnknownAlgorithm
	}
	return false
}

// IsUnordered returns true if err reports an unorderable input element.
func IsUnordered(err error) bool {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Code == ErrCodeUnordered
	}
	return false
}

// NewUnknownAlgorithmError creates an InputError for a failed registry lookup.
func NewUnknownAlgorithmError(name string) *InputError {
	return &InputError{
		Code:      ErrCodeUnknownAlgorithm,
		Message:   fmt.Sprintf("no algorithm registered as %q", name),
		Algorithm: name,
		Index:     -1,
	}
}

// NewUnorderedError creates an InputError for an element at index that
// cannot be ordered.
func NewUnorderedError(alg Algorithm, index int) *InputError {
	return &InputError{
		Code:      ErrCodeUnordered,
		Message:   fmt.Sprintf("element %d is not comparable (NaN)", index),
		Algorithm: alg.String(),
		Index:     index,
	}
}
