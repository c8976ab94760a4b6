package report

import (
	"errors"
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/cnconv/internal/analysis"
)

var ErrNothingToPlot = errors.New("report: fewer than two finite positive errors to plot")

// PlotASCII charts log2(E_h) against resolution index for the terminal.
func PlotASCII(t *analysis.Table) (string, error) {
	data := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if !plottable(row.MaxError) {
			continue
		}
		data = append(data, math.Log2(row.MaxError))
	}
	if len(data) < 2 {
		return "", ErrNothingToPlot
	}

	caption := fmt.Sprintf("log2(E_h) vs refinement, %s, N=%d..%d",
		t.Integrator, t.Rows[0].N, t.Rows[len(t.Rows)-1].N)

	return asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(64),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	), nil
}

// WriteConvergencePlot draws E_h against h on log-log axes together with a
// reference slope of the integrator's theoretical order, anchored at the
// finest resolution. The image format follows the file extension.
func WriteConvergencePlot(path string, t *analysis.Table) error {
	pts := make(plotter.XYs, 0, len(t.Rows))
	for _, row := range t.Rows {
		if !plottable(row.MaxError) {
			continue
		}
		pts = append(pts, plotter.XY{X: row.H, Y: row.MaxError})
	}
	if len(pts) < 2 {
		return ErrNothingToPlot
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s convergence (%s)", t.Integrator, t.Params.String())
	p.X.Label.Text = "h"
	p.Y.Label.Text = "max |y - x|"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	p.Add(line, points)
	p.Legend.Add(t.Integrator, line, points)

	if t.Order > 0 {
		ref, err := plotter.NewLine(referenceSlope(pts, t.Order))
		if err != nil {
			return err
		}
		ref.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(ref)
		p.Legend.Add(fmt.Sprintf("O(h^%d)", t.Order), ref)
	}
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// referenceSlope returns C*h^order through the last point of pts.
func referenceSlope(pts plotter.XYs, order int) plotter.XYs {
	last := pts[len(pts)-1]
	c := last.Y / math.Pow(last.X, float64(order))

	ref := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		ref[i] = plotter.XY{X: pt.X, Y: c * math.Pow(pt.X, float64(order))}
	}
	return ref
}

func plottable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
