package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for convergence study operations.
var (
	// ErrInvalidStepCount indicates a step count below one.
	ErrInvalidStepCount = errors.New("dynamo: step count must be at least 1")

	// ErrInvalidEndTime indicates a non-positive or non-finite end time.
	ErrInvalidEndTime = errors.New("dynamo: end time must be positive and finite")

	// ErrSingularStep indicates a step where an implicit update divides by zero.
	ErrSingularStep = errors.New("dynamo: singular step (implicit denominator is zero)")

	// ErrDimensionMismatch indicates trajectories of different lengths.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between trajectories")

	// ErrUnknownIntegrator indicates a stepper name missing from the registry.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")
)

// StepError wraps an error with the resolution it occurred at.
type StepError struct {
	N       int
	H       float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("n=%d h=%g: %v", e.N, e.H, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
