package dynamo

import (
	"fmt"
	"math"
)

// Trajectory holds one value per grid point t_i = i*h, i in [0, N).
type Trajectory []float64

func (tr Trajectory) Clone() Trajectory {
	c := make(Trajectory, len(tr))
	copy(c, tr)
	return c
}

func (tr Trajectory) IsValid() bool {
	for _, v := range tr {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Last returns the final value, or NaN for an empty trajectory.
func (tr Trajectory) Last() float64 {
	if len(tr) == 0 {
		return math.NaN()
	}
	return tr[len(tr)-1]
}

// Stepper advances y' = a*y by one fixed step.
type Stepper interface {
	Step(yn, h, a float64) float64
	Name() string
	Order() int
}

// Guarded is implemented by implicit steppers whose update divides by a
// step-dependent denominator.
type Guarded interface {
	CheckStep(h, a float64) error
}

// Params fixes the test problem dy/dt = A*y, y(0) = X0 on [0, T].
type Params struct {
	T  float64 `json:"end_time" yaml:"end_time"`
	A  float64 `json:"coefficient" yaml:"coefficient"`
	X0 float64 `json:"initial" yaml:"initial"`
}

func DefaultParams() Params {
	return Params{T: 1.0, A: -100.0, X0: 1.0}
}

func (p Params) Validate() error {
	if !(p.T > 0) || math.IsInf(p.T, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidEndTime, p.T)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("T=%g a=%g x0=%g", p.T, p.A, p.X0)
}
