package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/cnconv/internal/dynamo"
	"github.com/san-kum/cnconv/internal/logging"
)

const (
	DefaultMinExp = 3
	DefaultMaxExp = 10

	// MaxExp bounds the finest grid at 2^24 steps.
	MaxExp = 24
)

var ErrResolutionRange = errors.New("analysis: invalid resolution range")

// Resolutions returns the step counts 2^minExp, 2^(minExp+1), ..., 2^maxExp.
func Resolutions(minExp, maxExp int) ([]int, error) {
	if minExp < 0 || maxExp > MaxExp || minExp > maxExp {
		return nil, fmt.Errorf("%w: 2^%d..2^%d", ErrResolutionRange, minExp, maxExp)
	}
	ns := make([]int, 0, maxExp-minExp+1)
	for e := minExp; e <= maxExp; e++ {
		ns = append(ns, 1<<e)
	}
	return ns, nil
}

// Rate is the observed order between two consecutive halvings of h.
func Rate(coarse, fine float64) float64 {
	return math.Log2(coarse / fine)
}

type Study struct {
	params      dynamo.Params
	resolutions []int
	stepper     dynamo.Stepper
	logger      *slog.Logger
}

func NewStudy(params dynamo.Params, resolutions []int, stepper dynamo.Stepper, logger *slog.Logger) *Study {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Study{
		params:      params,
		resolutions: resolutions,
		stepper:     stepper,
		logger:      logger,
	}
}

// Run simulates every resolution, measures the maximum error against the
// exact solution on the same grid, and fills in the rates between neighbours.
// Resolutions run concurrently; rows keep the input order.
func (s *Study) Run(ctx context.Context) (*Table, error) {
	if s.stepper == nil {
		return nil, fmt.Errorf("analysis: no integrator configured")
	}
	if len(s.resolutions) == 0 {
		return nil, fmt.Errorf("%w: no resolutions", ErrResolutionRange)
	}
	if err := s.params.Validate(); err != nil {
		return nil, err
	}

	rows := make([]Row, len(s.resolutions))

	g, ctx := errgroup.WithContext(ctx)
	for i, n := range s.resolutions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row, err := s.measure(ctx, n)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := 0; i+1 < len(rows); i++ {
		rows[i].Rate = Rate(rows[i].MaxError, rows[i+1].MaxError)
		rows[i].HasRate = true
	}

	return &Table{
		Params:     s.params,
		Integrator: s.stepper.Name(),
		Order:      s.stepper.Order(),
		Rows:       rows,
	}, nil
}

func (s *Study) measure(ctx context.Context, n int) (Row, error) {
	p := s.params
	h := dynamo.StepSize(p.T, n)

	if g, ok := s.stepper.(dynamo.Guarded); ok {
		if err := g.CheckStep(h, p.A); err != nil {
			s.logger.Warn("singular step", "integrator", s.stepper.Name(), "n", n, "h", h, "error", err)
		}
	}

	y, err := dynamo.Simulate(p.T, n, p.X0, p.A, s.stepper)
	if err != nil {
		return Row{}, &dynamo.StepError{N: n, H: h, Wrapped: err}
	}
	exact := dynamo.Exact(p.X0, p.A, dynamo.SampleTimes(p.T, n))

	maxErr, err := dynamo.MaxAbsError(y, exact)
	if err != nil {
		return Row{}, &dynamo.StepError{N: n, H: h, Wrapped: err}
	}

	s.logger.Log(ctx, logging.LevelTrace, "trajectory", "n", n, "y_last", y.Last(), "x_last", exact[n-1])
	s.logger.Debug("resolution done", "integrator", s.stepper.Name(), "n", n, "h", h, "max_error", maxErr)
	return Row{N: n, H: h, MaxError: maxErr}, nil
}
