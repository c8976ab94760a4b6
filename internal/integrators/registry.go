package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/cnconv/internal/dynamo"
)

type Registry struct {
	steppers map[string]func() dynamo.Stepper
	aliases  map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		steppers: make(map[string]func() dynamo.Stepper),
		aliases:  make(map[string]string),
	}

	r.steppers["crank-nicolson"] = func() dynamo.Stepper { return NewCrankNicolson() }
	r.steppers["euler"] = func() dynamo.Stepper { return NewEuler() }
	r.steppers["backward-euler"] = func() dynamo.Stepper { return NewBackwardEuler() }
	r.steppers["rk4"] = func() dynamo.Stepper { return NewRK4() }

	r.aliases["cn"] = "crank-nicolson"
	r.aliases["trapezoidal"] = "crank-nicolson"
	r.aliases["implicit-euler"] = "backward-euler"

	return r
}

func (r *Registry) Get(name string) (dynamo.Stepper, error) {
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	fn, ok := r.steppers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownIntegrator, name, r.List())
	}
	return fn(), nil
}

// List returns the canonical stepper names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.steppers))
	for name := range r.steppers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
