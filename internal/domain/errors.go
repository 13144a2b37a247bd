package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed coordinates or unknown algorithm/mode names.
	ErrInvalidInput = errors.New("invalid input")
	// ErrServiceUnavailable marks any routing backend failure.
	ErrServiceUnavailable = errors.New("routing service unavailable")
)

// Stages at which the routing backend can fail.
const (
	StageMatrix   = "matrix"
	StageGeometry = "geometry"
)

type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// ServiceUnavailableError wraps a routing backend failure. Stage is a
// diagnostic detail only; callers should match on ErrServiceUnavailable.
type ServiceUnavailableError struct {
	Stage string
	Err   error
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("routing service unavailable (%s): %v", e.Stage, e.Err)
}

func (e *ServiceUnavailableError) Unwrap() error { return e.Err }

func (e *ServiceUnavailableError) Is(target error) bool { return target == ErrServiceUnavailable }
