package integrators

import (
	"errors"
	"testing"

	"github.com/san-kum/cnconv/internal/dynamo"
)

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name     string
		expected string
		order    int
	}{
		{"crank-nicolson", "crank-nicolson", 2},
		{"cn", "crank-nicolson", 2},
		{"trapezoidal", "crank-nicolson", 2},
		{"euler", "euler", 1},
		{"implicit-euler", "backward-euler", 1},
		{"rk4", "rk4", 4},
	}

	for _, tt := range tests {
		s, err := r.Get(tt.name)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt.name, err)
		}
		if s.Name() != tt.expected {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.expected, s.Name())
		}
		if s.Order() != tt.order {
			t.Errorf("%s: expected order %d, got %d", tt.name, tt.order, s.Order())
		}
	}
}

func TestRegistryUnknown(t *testing.T) {
	_, err := NewRegistry().Get("leapfrog")
	if !errors.Is(err, dynamo.ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
}

func TestRegistryList(t *testing.T) {
	names := NewRegistry().List()
	expected := []string{"backward-euler", "crank-nicolson", "euler", "rk4"}

	if len(names) != len(expected) {
		t.Fatalf("expected %d names, got %v", len(expected), names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("index %d: expected %s, got %s", i, expected[i], names[i])
		}
	}
}
