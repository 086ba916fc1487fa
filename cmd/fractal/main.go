package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fractal/internal/config"
	"github.com/san-kum/fractal/internal/evaluate"
	"github.com/san-kum/fractal/internal/field"
	"github.com/san-kum/fractal/internal/render"
	"github.com/san-kum/fractal/internal/stats"
	"github.com/san-kum/fractal/internal/storage"
	"github.com/san-kum/fractal/internal/viz"
)

var (
	dataDir  string
	width    int
	height   int
	budget   int
	radius   float64
	strategy string
	workers  int
	palette  string
	realMin  float64
	realMax  float64
	imagMin  float64
	imagMax  float64
	// Config file and preset selection
	configFile string
	preset     string
	// Output path for PNG export
	outFile string
	// Histogram bins for plot
	bins int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fractal",
		Short: "escape-time field lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunExplorer(config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fractal", "data directory")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "evaluate a field and save the run",
		RunE:  renderField,
	}
	addRegionFlags(renderCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot escape-count distribution of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bins, "bins", 60, "histogram bins")

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "ascii preview of a stored field",
		Args:  cobra.ExactArgs(1),
		RunE:  viewRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and counts to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export field counts to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "render a stored field to PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().StringVar(&outFile, "out", "field.png", "output file")
	exportPNGCmd.Flags().StringVar(&palette, "palette", config.DefaultPalette, "palette")

	benchCmd := &cobra.Command{
		Use:   "bench [strategy]",
		Short: "benchmark a strategy across grid sizes and budgets",
		Args:  cobra.ExactArgs(1),
		RunE:  benchStrategy,
	}
	benchCmd.Flags().IntVar(&workers, "workers", 0, "worker count (parallel strategy)")

	compareCmd := &cobra.Command{
		Use:   "compare [strategy1] [strategy2] ...",
		Short: "compare strategies on identical input",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareStrategies,
	}
	compareCmd.Flags().IntVar(&width, "width", 512, "grid width")
	compareCmd.Flags().IntVar(&height, "height", 384, "grid height")
	compareCmd.Flags().IntVar(&budget, "budget", 200, "iteration budget")
	compareCmd.Flags().IntVar(&workers, "workers", 0, "worker count (parallel strategy)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive field explorer",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset region")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list region presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(renderCmd, listCmd, plotCmd, viewCmd, exportCmd, exportJSONCmd, exportCSVCmd, exportPNGCmd, benchCmd, compareCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRegionFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "grid width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "grid height")
	cmd.Flags().IntVar(&budget, "budget", config.DefaultBudget, "iteration budget")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "divergence radius")
	cmd.Flags().StringVar(&strategy, "strategy", config.DefaultStrategy, "evaluation strategy")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count (parallel strategy)")
	cmd.Flags().StringVar(&palette, "palette", config.DefaultPalette, "palette")
	cmd.Flags().Float64Var(&realMin, "real-min", config.FullView.RealMin, "real axis lower bound")
	cmd.Flags().Float64Var(&realMax, "real-max", config.FullView.RealMax, "real axis upper bound")
	cmd.Flags().Float64Var(&imagMin, "imag-min", config.FullView.ImagMin, "imaginary axis lower bound")
	cmd.Flags().Float64Var(&imagMax, "imag-max", config.FullView.ImagMax, "imaginary axis upper bound")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset region")
}

// resolveConfig layers preset, config file and flags, in that order.
// Explicitly set flags always win, matching the CLI-over-file precedence
// of the render command's sibling tools.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	label := "field"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
		label = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("width") {
		cfg.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = height
	}
	if cmd.Flags().Changed("budget") {
		cfg.Budget = budget
	}
	if cmd.Flags().Changed("radius") {
		cfg.Radius = radius
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Strategy = strategy
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("palette") {
		cfg.Palette = palette
	}
	if cmd.Flags().Changed("real-min") {
		cfg.Region.RealMin = realMin
	}
	if cmd.Flags().Changed("real-max") {
		cfg.Region.RealMax = realMax
	}
	if cmd.Flags().Changed("imag-min") {
		cfg.Region.ImagMin = imagMin
	}
	if cmd.Flags().Changed("imag-max") {
		cfg.Region.ImagMax = imagMax
	}

	return cfg, label, nil
}

func gridFromConfig(cfg *config.Config) field.Grid {
	return field.Grid{
		Height:  cfg.Height,
		Width:   cfg.Width,
		RealMin: cfg.Region.RealMin,
		RealMax: cfg.Region.RealMax,
		ImagMin: cfg.Region.ImagMin,
		ImagMax: cfg.Region.ImagMax,
	}
}

func renderField(cmd *cobra.Command, args []string) error {
	cfg, label, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := evaluate.NewRegistry()
	strat, err := registry.Get(cfg.Strategy, cfg.Workers)
	if err != nil {
		return err
	}

	fmt.Printf("evaluating %dx%d field, budget %d, strategy %s...\n", cfg.Width, cfg.Height, cfg.Budget, strat.Name())
	start := time.Now()

	fld, err := strat.Evaluate(context.Background(), gridFromConfig(cfg), evaluate.Options{
		Budget: cfg.Budget,
		Radius: cfg.Radius,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	summary := stats.Summary(fld, cfg.Budget)

	runID, err := st.Save(label, cfg, elapsed, summary, fld)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("cells: %d\n", len(fld.Counts))
	fmt.Println("\nstats:")
	for name, val := range summary {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tBUDGET\tSTRATEGY\tEVAL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%s\t%.1fms\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.Budget,
			run.Strategy,
			run.ElapsedMS,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fld, err := st.LoadField(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("region: [%g, %g] x [%g, %g]i\n", meta.Region.RealMin, meta.Region.RealMax, meta.Region.ImagMin, meta.Region.ImagMax)
	fmt.Printf("cells: %d\n\n", len(fld.Counts))

	hist := stats.Histogram(fld, meta.Budget, bins)
	graph := asciigraph.Plot(hist,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("escape-count distribution (diverged cells)"),
	)
	fmt.Println(graph)
	fmt.Println()

	fmt.Printf("bounded fraction: %.4f\n", stats.BoundedFraction(fld, meta.Budget))
	fmt.Printf("mean escape:      %.2f\n", stats.MeanEscape(fld, meta.Budget))

	return nil
}

func viewRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fld, err := st.LoadField(args[0])
	if err != nil {
		return err
	}

	fmt.Print(render.ASCII(fld, meta.Budget))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fld, err := st.LoadField(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, fld)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	fld, err := st.LoadField(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	row := make([]string, fld.Width)
	for r := 0; r < fld.Height; r++ {
		for col, count := range fld.Row(r) {
			row[col] = strconv.Itoa(count)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fld, err := st.LoadField(args[0])
	if err != nil {
		return err
	}

	p, err := render.GetPalette(palette)
	if err != nil {
		return err
	}

	if err := render.WritePNG(outFile, fld, meta.Budget, p); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%dx%d)\n", outFile, fld.Width, fld.Height)
	return nil
}

func benchStrategy(cmd *cobra.Command, args []string) error {
	registry := evaluate.NewRegistry()
	strat, err := registry.Get(args[0], workers)
	if err != nil {
		return err
	}

	sizes := []int{256, 512, 1024}
	budgets := []int{50, 200, 1000}

	fmt.Printf("benchmarking %s\n\n", strat.Name())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tBUDGET\tCELLS\tTIME\tCELLS/SEC")

	for _, size := range sizes {
		for _, b := range budgets {
			grid := field.Grid{
				Height:  size,
				Width:   size,
				RealMin: config.FullView.RealMin,
				RealMax: config.FullView.RealMax,
				ImagMin: config.FullView.ImagMin,
				ImagMax: config.FullView.ImagMax,
			}

			start := time.Now()
			fld, err := strat.Evaluate(context.Background(), grid, evaluate.Options{Budget: b})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			cells := len(fld.Counts)
			cellsPerSec := float64(cells) / elapsed.Seconds()

			fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\n",
				size, size, b, cells, elapsed.Round(time.Microsecond), cellsPerSec)
		}
	}

	return w.Flush()
}

func compareStrategies(cmd *cobra.Command, args []string) error {
	registry := evaluate.NewRegistry()

	grid := field.Grid{
		Height:  height,
		Width:   width,
		RealMin: config.FullView.RealMin,
		RealMax: config.FullView.RealMax,
		ImagMin: config.FullView.ImagMin,
		ImagMax: config.FullView.ImagMax,
	}
	opts := evaluate.Options{Budget: budget}

	fmt.Printf("comparing strategies on %dx%d, budget %d\n\n", width, height, budget)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tTIME\tBOUNDED\tMATCH")

	var reference *field.Field
	for _, name := range args {
		strat, err := registry.Get(name, workers)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\n", name, err)
			continue
		}

		start := time.Now()
		fld, err := strat.Evaluate(context.Background(), grid, opts)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\n", name, err)
			continue
		}

		match := "reference"
		if reference == nil {
			reference = fld
		} else if fld.Equal(reference) {
			match = "exact"
		} else {
			match = "MISMATCH"
		}

		fmt.Fprintf(w, "%s\t%v\t%.4f\t%s\n",
			name, elapsed.Round(time.Microsecond), stats.BoundedFraction(fld, budget), match)
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunExplorer(cfg)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tREGION\tBUDGET")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t[%g, %g] x [%g, %g]i\t%d\n",
			name, p.Region.RealMin, p.Region.RealMax, p.Region.ImagMin, p.Region.ImagMax, p.Budget)
	}
	return w.Flush()
}
