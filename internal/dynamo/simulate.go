package dynamo

import (
	"fmt"
	"math"
)

// Simulate integrates dy/dt = a*y from x0 with N uniform steps of size T/N.
// The result has exactly N entries on the half-open grid [0, T); entry 0 is x0.
func Simulate(T float64, N int, x0, a float64, s Stepper) (Trajectory, error) {
	if N < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStepCount, N)
	}
	if err := (Params{T: T, A: a, X0: x0}).Validate(); err != nil {
		return nil, err
	}

	h := T / float64(N)
	y := make(Trajectory, N)
	y[0] = x0
	fold(y[1:], x0, func(acc float64) float64 {
		return s.Step(acc, h, a)
	})
	return y, nil
}

// fold writes successive applications of step, seeded by init, into out.
func fold(out []float64, init float64, step func(float64) float64) {
	acc := init
	for i := range out {
		acc = step(acc)
		out[i] = acc
	}
}

// StepSize returns T/N.
func StepSize(T float64, N int) float64 {
	return T / float64(N)
}

// CheckStep reports ErrSingularStep when the Crank-Nicolson denominator
// 1 - h*a/2 is zero.
func CheckStep(h, a float64) error {
	if 1-0.5*h*a == 0 {
		return fmt.Errorf("%w: h=%g a=%g", ErrSingularStep, h, a)
	}
	return nil
}

// SampleTimes returns t_i = i*T/N for i in [0, N). T itself is excluded.
func SampleTimes(T float64, N int) []float64 {
	if N < 1 {
		return nil
	}
	h := T / float64(N)
	times := make([]float64, N)
	for i := range times {
		times[i] = float64(i) * h
	}
	return times
}

// Exact evaluates x0*exp(a*t) at each time.
func Exact(x0, a float64, times []float64) []float64 {
	x := make([]float64, len(times))
	for i, t := range times {
		x[i] = x0 * math.Exp(a*t)
	}
	return x
}
