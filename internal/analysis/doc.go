// Package analysis runs convergence studies for the integrators.
//
// A [Study] simulates dy/dt = a*y at each step count of a resolution ladder,
// measures the maximum pointwise error against x0*exp(a*t), and estimates the
// observed order between consecutive halvings of h:
//
//	r_i = log2(E_i / E_{i+1})
//
// The finest resolution has no finer comparator and therefore no rate.
//
//	ns, _ := analysis.Resolutions(3, 10)
//	table, err := analysis.NewStudy(dynamo.DefaultParams(), ns, integrators.NewCrankNicolson(), nil).Run(ctx)
//	order, _ := table.ObservedOrder() // ~2 for Crank-Nicolson
package analysis
