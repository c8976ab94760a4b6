package integrators

import (
	"fmt"

	"github.com/san-kum/cnconv/internal/dynamo"
)

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(yn, h, a float64) float64 {
	return yn + h*a*yn
}

func (e *Euler) Name() string { return "euler" }
func (e *Euler) Order() int   { return 1 }

// BackwardEuler solves y_next = yn + h*a*y_next exactly.
type BackwardEuler struct{}

func NewBackwardEuler() *BackwardEuler {
	return &BackwardEuler{}
}

func (b *BackwardEuler) Step(yn, h, a float64) float64 {
	return yn / (1 - h*a)
}

func (b *BackwardEuler) Name() string { return "backward-euler" }
func (b *BackwardEuler) Order() int   { return 1 }

func (b *BackwardEuler) CheckStep(h, a float64) error {
	if 1-h*a == 0 {
		return fmt.Errorf("%w: h=%g a=%g", dynamo.ErrSingularStep, h, a)
	}
	return nil
}
