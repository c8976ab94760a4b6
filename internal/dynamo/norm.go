package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// MaxAbsError returns max_i |approx[i] - exact[i]|.
// A NaN anywhere in the difference makes the result NaN, so a blown-up run
// is never reported as accurate.
func MaxAbsError(approx, exact []float64) (float64, error) {
	if len(approx) != len(exact) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(approx), len(exact))
	}
	if len(approx) == 0 {
		return 0, nil
	}
	diff := make([]float64, len(approx))
	floats.SubTo(diff, approx, exact)
	if floats.HasNaN(diff) {
		return math.NaN(), nil
	}
	return floats.Norm(diff, math.Inf(1)), nil
}
