package integrators

import "github.com/san-kum/cnconv/internal/dynamo"

// CrankNicolsonStep advances y' = a*y by one step of the trapezoidal rule,
// solved in closed form for the linear case:
//
//	y_next = yn * (1 + h*a/2) / (1 - h*a/2)
//
// The step is A-stable for Re(a) <= 0. At h*a == 2 the denominator is zero and
// the result is Inf or NaN.
func CrankNicolsonStep(yn, h, a float64) float64 {
	return yn * (1 + 0.5*h*a) / (1 - 0.5*h*a)
}

type CrankNicolson struct{}

func NewCrankNicolson() *CrankNicolson {
	return &CrankNicolson{}
}

func (c *CrankNicolson) Step(yn, h, a float64) float64 {
	return CrankNicolsonStep(yn, h, a)
}

func (c *CrankNicolson) Name() string { return "crank-nicolson" }
func (c *CrankNicolson) Order() int   { return 2 }

func (c *CrankNicolson) CheckStep(h, a float64) error {
	return dynamo.CheckStep(h, a)
}

// SimulateCrankNicolson runs dynamo.Simulate with the Crank-Nicolson stepper.
func SimulateCrankNicolson(T float64, N int, x0, a float64) (dynamo.Trajectory, error) {
	return dynamo.Simulate(T, N, x0, a, NewCrankNicolson())
}
