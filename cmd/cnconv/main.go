package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/cnconv/internal/analysis"
	"github.com/san-kum/cnconv/internal/config"
	"github.com/san-kum/cnconv/internal/integrators"
	"github.com/san-kum/cnconv/internal/logging"
	"github.com/san-kum/cnconv/internal/report"
	"github.com/san-kum/cnconv/internal/storage"
	"github.com/san-kum/cnconv/internal/tui"
)

var (
	dataDir     string
	configFile  string
	preset      string
	endTime     float64
	coefficient float64
	initial     float64
	minExp      int
	maxExp      int
	integrator  string
	format      string
	logLevel    string
	// plot
	asciiPlot bool
	plotOut   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd wires every subcommand. With no subcommand the default
// convergence table is printed.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cnconv",
		Short:         "convergence order study for dy/dt = a*y",
		Args:          cobra.NoArgs,
		RunE:          runTable,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".cnconv", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64VarP(&endTime, "end-time", "T", config.DefaultEndTime, "end time T")
	pf.Float64VarP(&coefficient, "coefficient", "a", config.DefaultCoefficient, "ODE coefficient a")
	pf.Float64Var(&initial, "x0", config.DefaultInitial, "initial condition")
	pf.IntVar(&minExp, "min-exp", analysis.DefaultMinExp, "coarsest grid 2^min-exp steps")
	pf.IntVar(&maxExp, "max-exp", analysis.DefaultMaxExp, "finest grid 2^max-exp steps")
	pf.StringVarP(&integrator, "integrator", "i", config.DefaultIntegrator, "integrator")
	pf.StringVarP(&format, "format", "f", config.DefaultFormat, "output format (table|pretty|json|csv)")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (warn|info|debug|trace)")

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "print the error/convergence table",
		Args:  cobra.NoArgs,
		RunE:  runTable,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare observed and theoretical orders",
		RunE:  compareIntegrators,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot error against step size",
		Args:  cobra.NoArgs,
		RunE:  plotStudy,
	}
	plotCmd.Flags().BoolVar(&asciiPlot, "ascii", false, "draw in the terminal")
	plotCmd.Flags().StringVarP(&plotOut, "out", "o", "", "write a log-log chart (.png, .svg, .pdf)")

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "run the study and store the table",
		Args:  cobra.NoArgs,
		RunE:  saveStudy,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a stored table",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive explorer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return tui.RunExplorer(cfg.Params(), cfg.MinExp, cfg.MaxExp, cfg.Integrator)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(out, "  %-8s %s N=2^%d..2^%d\n", name, p.Params().String(), p.MinExp, p.MaxExp)
			}
			return nil
		},
	}

	rootCmd.AddCommand(tableCmd, compareCmd, plotCmd, saveCmd, listCmd, showCmd, exploreCmd, presetsCmd)
	return rootCmd
}

// resolveConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("end-time") {
		cfg.EndTime = endTime
	}
	if flags.Changed("coefficient") {
		cfg.Coefficient = coefficient
	}
	if flags.Changed("x0") {
		cfg.Initial = initial
	}
	if flags.Changed("min-exp") {
		cfg.MinExp = minExp
	}
	if flags.Changed("max-exp") {
		cfg.MaxExp = maxExp
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runStudy(ctx context.Context, cfg *config.Config, name string, logger *slog.Logger) (*analysis.Table, error) {
	stepper, err := integrators.NewRegistry().Get(name)
	if err != nil {
		return nil, err
	}
	ns, err := cfg.Resolutions()
	if err != nil {
		return nil, err
	}
	logger.Debug("study", "integrator", stepper.Name(), "params", cfg.Params().String(), "resolutions", len(ns))
	return analysis.NewStudy(cfg.Params(), ns, stepper, logger).Run(ctx)
}

func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.NewLogger(cfg.LogLevel, cmd.ErrOrStderr()), nil
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	table, err := runStudy(cmd.Context(), cfg, cfg.Integrator, logger)
	if err != nil {
		return err
	}

	return report.Write(cmd.OutOrStdout(), cfg.Format, table)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = integrators.NewRegistry().List()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing integrators (%s, N=2^%d..2^%d)\n\n", cfg.Params().String(), cfg.MinExp, cfg.MaxExp)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tORDER\tOBSERVED\tFINEST E_h")

	for _, name := range names {
		table, err := runStudy(cmd.Context(), cfg, name, logger)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\n", name, err)
			continue
		}
		observed := report.Placeholder
		if order, ok := table.ObservedOrder(); ok {
			observed = fmt.Sprintf("%.4f", order)
		}
		finest := table.Rows[len(table.Rows)-1].MaxError
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", table.Integrator, table.Order, observed, report.FormatFloat(finest))
	}

	return w.Flush()
}

func plotStudy(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	table, err := runStudy(cmd.Context(), cfg, cfg.Integrator, logger)
	if err != nil {
		return err
	}

	if plotOut != "" {
		if err := report.WriteConvergencePlot(plotOut, table); err != nil {
			return err
		}
		logger.Info("plot written", "path", plotOut)
	}

	if asciiPlot || plotOut == "" {
		graph, err := report.PlotASCII(table)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), graph)
	}
	return nil
}

func saveStudy(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	table, err := runStudy(cmd.Context(), cfg, cfg.Integrator, logger)
	if err != nil {
		return err
	}

	runID, err := st.Save(table)
	if err != nil {
		return err
	}
	logger.Info("run saved", "id", runID, "dir", dataDir)

	fmt.Fprintf(cmd.OutOrStdout(), "run id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tINTEG\tPARAMS\tN\tOBSERVED")

	for _, run := range runs {
		observed := report.Placeholder
		if run.ObservedOrder != nil {
			observed = fmt.Sprintf("%.4f", *run.ObservedOrder)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Integrator,
			run.Params.String(),
			resolutionRange(run.Resolutions),
			observed,
		)
	}

	return w.Flush()
}

func resolutionRange(ns []int) string {
	if len(ns) == 0 {
		return "-"
	}
	return fmt.Sprintf("%d..%d", ns[0], ns[len(ns)-1])
}

func showRun(cmd *cobra.Command, args []string) error {
	f := strings.ToLower(format)
	if !report.ValidFormat(f) {
		return fmt.Errorf("unknown format: %s (available: %v)", format, report.Formats)
	}

	table, err := storage.New(dataDir).LoadTable(args[0])
	if err != nil {
		return err
	}
	return report.Write(cmd.OutOrStdout(), f, table)
}
