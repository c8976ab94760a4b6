package analysis_test

import (
	"bytes"
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cnconv/internal/analysis"
	"github.com/san-kum/cnconv/internal/dynamo"
	"github.com/san-kum/cnconv/internal/integrators"
	"github.com/san-kum/cnconv/internal/logging"
)

var _ = Describe("Resolutions", func() {
	It("builds the default ladder 2^3..2^10", func() {
		ns, err := analysis.Resolutions(analysis.DefaultMinExp, analysis.DefaultMaxExp)
		Expect(err).NotTo(HaveOccurred())
		Expect(ns).To(Equal([]int{8, 16, 32, 64, 128, 256, 512, 1024}))
	})

	It("rejects inverted and out-of-range ladders", func() {
		_, err := analysis.Resolutions(5, 4)
		Expect(err).To(MatchError(analysis.ErrResolutionRange))

		_, err = analysis.Resolutions(-1, 4)
		Expect(err).To(MatchError(analysis.ErrResolutionRange))

		_, err = analysis.Resolutions(3, analysis.MaxExp+1)
		Expect(err).To(MatchError(analysis.ErrResolutionRange))
	})
})

var _ = Describe("Rate", func() {
	It("is log2 of the error ratio", func() {
		Expect(analysis.Rate(4, 1)).To(BeNumerically("~", 2, 1e-15))
		Expect(analysis.Rate(1, 1)).To(BeZero())
	})
})

var _ = Describe("Study", func() {
	var (
		ctx    context.Context
		params dynamo.Params
		ns     []int
	)

	BeforeEach(func() {
		ctx = context.Background()
		params = dynamo.DefaultParams()
		var err error
		ns, err = analysis.Resolutions(analysis.DefaultMinExp, analysis.DefaultMaxExp)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("with Crank-Nicolson on the default stiff problem", func() {
		var table *analysis.Table

		BeforeEach(func() {
			var err error
			table, err = analysis.NewStudy(params, ns, integrators.NewCrankNicolson(), nil).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
		})

		It("has one row per resolution in ascending N", func() {
			Expect(table.Rows).To(HaveLen(len(ns)))
			for i, row := range table.Rows {
				Expect(row.N).To(Equal(ns[i]))
				Expect(row.H).To(Equal(params.T / float64(ns[i])))
			}
		})

		It("leaves only the finest row without a rate", func() {
			last := len(table.Rows) - 1
			for i, row := range table.Rows {
				if i == last {
					Expect(row.HasRate).To(BeFalse())
					continue
				}
				Expect(row.HasRate).To(BeTrue())
				Expect(math.IsNaN(row.Rate) || math.IsInf(row.Rate, 0)).To(BeFalse())
			}
		})

		It("records the coarsest error from the geometric recurrence", func() {
			// At N=8 the error is dominated by y[1] = -5.25/7.25 against exp(-12.5).
			Expect(table.Rows[0].MaxError).To(BeNumerically("~", 5.25/7.25+math.Exp(-12.5), 1e-12))
		})

		It("observes second order on fine grids", func() {
			order, ok := table.ObservedOrder()
			Expect(ok).To(BeTrue())
			Expect(math.Abs(order - 2)).To(BeNumerically("<", 0.05))
			Expect(table.Order).To(Equal(2))
			Expect(table.Integrator).To(Equal("crank-nicolson"))
		})

		It("exposes errors and step sizes in row order", func() {
			Expect(table.Errors()).To(HaveLen(len(ns)))
			Expect(table.StepSizes()[0]).To(Equal(0.125))
			Expect(table.Errors()[0]).To(Equal(table.Rows[0].MaxError))
		})
	})

	It("approaches order 2 between N=1024 and N=2048", func() {
		table, err := analysis.NewStudy(params, []int{1024, 2048}, integrators.NewCrankNicolson(), nil).Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(math.Abs(table.Rows[0].Rate - 2)).To(BeNumerically("<", 0.05))
	})

	DescribeTable("observed order of each integrator on a mild problem",
		func(stepper dynamo.Stepper, expected float64) {
			mild := dynamo.Params{T: 1, A: -1, X0: 1}
			finer, err := analysis.Resolutions(4, 8)
			Expect(err).NotTo(HaveOccurred())

			table, err := analysis.NewStudy(mild, finer, stepper, nil).Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			order, ok := table.ObservedOrder()
			Expect(ok).To(BeTrue())
			Expect(order).To(BeNumerically("~", expected, 0.1))
		},
		Entry("euler", integrators.NewEuler(), 1.0),
		Entry("backward euler", integrators.NewBackwardEuler(), 1.0),
		Entry("crank-nicolson", integrators.NewCrankNicolson(), 2.0),
		Entry("rk4", integrators.NewRK4(), 4.0),
	)

	It("reports no observed order for a single resolution", func() {
		table, err := analysis.NewStudy(params, []int{8}, integrators.NewCrankNicolson(), nil).Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(table.Rows).To(HaveLen(1))
		Expect(table.Rows[0].HasRate).To(BeFalse())
		_, ok := table.ObservedOrder()
		Expect(ok).To(BeFalse())
	})

	It("wraps invalid step counts with the resolution", func() {
		_, err := analysis.NewStudy(params, []int{8, 0}, integrators.NewCrankNicolson(), nil).Run(ctx)
		Expect(err).To(MatchError(dynamo.ErrInvalidStepCount))

		var stepErr *dynamo.StepError
		Expect(err).To(BeAssignableToTypeOf(stepErr))
		Expect(err.Error()).To(HavePrefix("n=0 h=+Inf: "))
	})

	It("rejects an empty ladder and a bad end time", func() {
		_, err := analysis.NewStudy(params, nil, integrators.NewCrankNicolson(), nil).Run(ctx)
		Expect(err).To(MatchError(analysis.ErrResolutionRange))

		bad := dynamo.Params{T: -1, A: -1, X0: 1}
		_, err = analysis.NewStudy(bad, ns, integrators.NewCrankNicolson(), nil).Run(ctx)
		Expect(err).To(MatchError(dynamo.ErrInvalidEndTime))
	})

	It("stops when the context is canceled", func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := analysis.NewStudy(params, ns, integrators.NewCrankNicolson(), nil).Run(canceled)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("carries non-finite errors through a singular step", func() {
		// h*a == 2 at N=50.
		singular := dynamo.Params{T: 1, A: 100, X0: 1}
		var logs bytes.Buffer
		logger := logging.NewLogger("info", &logs)

		table, err := analysis.NewStudy(singular, []int{50, 100}, integrators.NewCrankNicolson(), logger).Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(math.IsInf(table.Rows[0].MaxError, 0) || math.IsNaN(table.Rows[0].MaxError)).To(BeTrue())
		Expect(logs.String()).To(ContainSubstring("singular step"))
		Expect(logs.String()).To(ContainSubstring("n=50"))
		Expect(logs.String()).NotTo(ContainSubstring("n=100"))
	})
})
