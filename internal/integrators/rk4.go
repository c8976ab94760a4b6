package integrators

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(yn, h, a float64) float64 {
	f := func(y float64) float64 { return a * y }

	k1 := f(yn)
	k2 := f(yn + h*0.5*k1)
	k3 := f(yn + h*0.5*k2)
	k4 := f(yn + h*k3)

	return yn + h/6.0*(k1+2*k2+2*k3+k4)
}

func (r *RK4) Name() string { return "rk4" }
func (r *RK4) Order() int   { return 4 }
