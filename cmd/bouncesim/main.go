package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bouncesim/internal/analysis"
	"github.com/san-kum/bouncesim/internal/automation"
	"github.com/san-kum/bouncesim/internal/config"
	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/export"
	"github.com/san-kum/bouncesim/internal/gui"
	"github.com/san-kum/bouncesim/internal/metrics"
	"github.com/san-kum/bouncesim/internal/optim"
	"github.com/san-kum/bouncesim/internal/physics"
	"github.com/san-kum/bouncesim/internal/storage"
	"github.com/san-kum/bouncesim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	// Headless runs
	ticks int
	// Live view
	gifPath string
	theme   string
	// Run inspection
	bodyIndex int
	frameIdx  int
	outPath   string
	braille   bool
	trajBody  int
	// Benchmark
	benchRuns  int
	benchTicks int
	// Sweep
	sweepParams []string
	sweepMetric string
)

// main registers the commands and runs the window demo when no subcommand
// is given. Any error, including a failed window or surface init, exits 1.
func main() {
	log.SetFlags(0)
	log.SetPrefix("bouncesim: ")

	rootCmd := &cobra.Command{
		Use:           "bouncesim",
		Short:         "bouncing balls in a box",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runWindow,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bouncesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (default: time based)")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run the bounce demo in a window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the bounce demo in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&gifPath, "gif", "bouncesim.gif", "output path for G recordings")
	liveCmd.Flags().StringVar(&theme, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	starfieldCmd := &cobra.Command{
		Use:   "starfield",
		Short: "fly through a rotating star field",
		Args:  cobra.NoArgs,
		RunE:  runStarfield,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and store the result",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy and a body's height",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "bounce frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a frame or a trajectory to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame index (-1 for the last)")
	exportSVGCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "render through the terminal canvas")
	exportSVGCmd.Flags().IntVar(&trajBody, "trajectory", -1, "draw this body's path instead of a frame")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the physics step",
		Args:  cobra.NoArgs,
		RunE:  benchPhysics,
	}
	benchCmd.Flags().IntVar(&benchRuns, "runs", 4, "concurrent runs per row")
	benchCmd.Flags().IntVar(&benchTicks, "ticks", 300, "ticks per run")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search physics parameters for the lowest metric",
		Args:  cobra.NoArgs,
		RunE:  sweepParameters,
	}
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "name=v1,v2,... (repeatable; "+strings.Join(optim.Tunable, ", ")+")")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "energy_drift", "metric to minimise")
	sweepCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks per run")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(windowCmd, liveCmd, starfieldCmd, runCmd, listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, benchCmd, sweepCmd, scenarioCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		var initErr *dynamo.InitError
		if errors.As(err, &initErr) {
			log.Printf("initialisation failed at %s: %v", initErr.Stage, initErr.Wrapped)
		} else {
			log.Print(err)
		}
		os.Exit(1)
	}
}

// loadConfig resolves the startup configuration: defaults, then the preset,
// then the config file. --seed beats both; a zero seed means time based.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if f := cmd.Flags().Lookup("ticks"); f != nil && f.Changed {
		cfg.Ticks = ticks
	}
	if f := cmd.Flags().Lookup("theme"); f != nil && f.Changed {
		cfg.Theme = theme
	}
	return cfg, nil
}

func presetName() string {
	if preset == "" {
		return "classic"
	}
	return preset
}

func setup(cmd *cobra.Command) (*config.Config, dynamo.Config, *physics.Engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, dynamo.Config{}, nil, err
	}
	simCfg, err := cfg.ToSim()
	if err != nil {
		return nil, dynamo.Config{}, nil, err
	}
	engine, err := physics.NewEngineFromConfig(simCfg)
	if err != nil {
		return nil, dynamo.Config{}, nil, err
	}
	return cfg, simCfg, engine, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	_, simCfg, engine, err := setup(cmd)
	if err != nil {
		return err
	}
	return gui.RunBounce(cmd.Context(), simCfg, engine, rand.New(rand.NewSource(simCfg.Seed)))
}

func runStarfield(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sfCfg, err := cfg.ToStarfield()
	if err != nil {
		return err
	}
	return gui.RunStarfield(cmd.Context(), sfCfg, rand.New(rand.NewSource(cfg.Seed)))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, simCfg, engine, err := setup(cmd)
	if err != nil {
		return err
	}

	sim, err := dynamo.New(simCfg, engine, nil)
	if err != nil {
		return err
	}

	if err := viz.SetTheme(cfg.Theme); err != nil {
		return err
	}
	m := viz.NewModel(sim, presetName()).WithRecorder(func(frames []*image.RGBA) error {
		return export.SaveGIF(gifPath, frames, simCfg.FrameDelay)
	})

	p := tea.NewProgram(m, tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, simCfg, engine, err := setup(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sim, err := dynamo.New(simCfg, engine, nil)
	if err != nil {
		return err
	}
	for _, m := range metrics.Defaults(simCfg.Params.Gravity) {
		sim.AddMetric(m)
	}

	fmt.Printf("running %s: %d bodies, %d ticks, seed %d...\n", presetName(), simCfg.Bodies, cfg.Ticks, simCfg.Seed)
	start := time.Now()

	result, err := sim.Run(cmd.Context(), cfg.Ticks)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.NewMetadata(presetName(), simCfg, result), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tBODIES\tTICKS\tSEED\tBROADPHASE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Ticks,
			run.Seed,
			run.Broadphase,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, [][]dynamo.Body, []float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}

	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, nil, err
	}

	if len(frames) == 0 {
		return nil, nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, frames, times, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, _, err := loadRun(args[0])
	if err != nil {
		return err
	}
	world := meta.World()

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(frames))

	energy := make([]float64, len(frames))
	for i, frame := range frames {
		energy[i] = metrics.Total(frame, world, meta.Gravity)
	}
	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("total energy"),
	))
	fmt.Println()

	heights := analysis.HeightSeries(frames, world, bodyIndex)
	if len(heights) == 0 {
		return fmt.Errorf("body %d not in run", bodyIndex)
	}
	fmt.Println(asciigraph.Plot(heights,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("body %d height", bodyIndex)),
	))

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	heights := analysis.HeightSeries(frames, meta.World(), bodyIndex)
	if len(heights) < 4 {
		return fmt.Errorf("not enough samples for body %d", bodyIndex)
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("body: %d\n\n", bodyIndex)

	ps := analysis.PowerSpectrum(heights)
	plotData := ps[:max(2, len(ps)/4)]

	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (height)"),
	))
	fmt.Println()

	freq := analysis.DominantFrequency(heights, meta.Dt)
	fmt.Printf("dominant frequency: %.4f per tick\n", freq)
	if freq > 0 {
		fmt.Printf("bounce period: %.1f ticks\n", 1.0/freq)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, frames, times, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, frames, times)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, frames, times, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, frames, times)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, frames, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	idx := frameIdx
	if idx < 0 {
		idx = len(frames) - 1
	}
	if idx >= len(frames) {
		return fmt.Errorf("frame %d out of range (run has %d)", idx, len(frames))
	}

	var svg string
	switch {
	case trajBody >= 0:
		pts := export.BodyTrajectory(frames[:idx+1], trajBody)
		if len(pts) < 2 {
			return fmt.Errorf("body %d has no trajectory", trajBody)
		}
		stroke := frames[0][trajBody].Color.Hex()
		svg = export.TrajectoryToSVG(pts, int(meta.Width), int(meta.Height), stroke)
	case braille:
		canvas := viz.NewCanvas(80, 24)
		canvas.Fit(meta.World())
		if err := dynamo.RenderFrame(canvas, frames[idx]); err != nil {
			return err
		}
		svg = export.CanvasToSVG(canvas, 4)
	default:
		svg = export.FrameToSVG(frames[idx], meta.World())
	}

	if outPath == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(outPath, []byte(svg), 0644)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tGRAVITY\tRESTITUTION\tBROADPHASE")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%s\n", name, p.Bodies, p.Physics.Gravity, p.Physics.Restitution, p.Broadphase)
	}
	return w.Flush()
}

func benchPhysics(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if benchRuns <= 0 || benchTicks <= 0 {
		return fmt.Errorf("runs and ticks must be positive")
	}

	counts := []int{10, 100, 400}
	broadphases := []string{"all", "grid"}

	fmt.Printf("benchmarking %d runs x %d ticks\n\n", benchRuns, benchTicks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tBROADPHASE\tSTEPS\tTIME\tSTEPS/SEC\tMAX OVERLAP")

	for _, n := range counts {
		for _, name := range broadphases {
			c := cfg.Clone()
			c.Bodies = n
			c.Broadphase = name
			c.Spawn.MinRadius, c.Spawn.MaxRadius = 3, 6
			simCfg, err := c.ToSim()
			if err != nil {
				return err
			}
			if _, err := physics.NewBroadphase(name, simCfg.CellSize); err != nil {
				return err
			}

			ens := dynamo.NewEnsemble(simCfg, func() dynamo.Engine {
				bp, _ := physics.NewBroadphase(name, simCfg.CellSize)
				return physics.NewEngine(bp, simCfg.Parallel)
			}, benchRuns, simCfg.Seed).WithMetrics(func() []dynamo.Metric {
				return []dynamo.Metric{metrics.NewPenetration()}
			})

			start := time.Now()
			results, err := ens.Run(cmd.Context(), benchTicks)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			steps := 0
			deepest := 0.0
			for _, r := range results {
				steps += r.StepsTaken
				deepest = max(deepest, r.Metrics["max_penetration"])
			}
			fmt.Fprintf(w, "%d\t%s\t%d\t%v\t%.0f\t%.2f\n",
				n, name, steps, elapsed.Round(time.Millisecond), float64(steps)/elapsed.Seconds(), deepest)
		}
	}

	return w.Flush()
}

func sweepParameters(cmd *cobra.Command, args []string) error {
	cfg, simCfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	if len(sweepParams) == 0 {
		return fmt.Errorf("at least one --param is required")
	}

	names := make([]string, 0, len(sweepParams))
	ranges := make([][]float64, 0, len(sweepParams))
	for _, arg := range sweepParams {
		name, values, err := parseSweepParam(arg)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	build := func(params map[string]float64) (*dynamo.Simulator, error) {
		c, err := optim.Apply(simCfg, params)
		if err != nil {
			return nil, err
		}
		engine, err := physics.NewEngineFromConfig(c)
		if err != nil {
			return nil, err
		}
		sim, err := dynamo.New(c, engine, nil)
		if err != nil {
			return nil, err
		}
		for _, m := range metrics.Defaults(c.Params.Gravity) {
			sim.AddMetric(m)
		}
		return sim, nil
	}

	fmt.Printf("sweeping %s over %d ticks, minimising %s\n\n", strings.Join(names, ", "), cfg.Ticks, sweepMetric)
	best, trials, err := optim.NewGridSearch(names, ranges).Search(cmd.Context(), build, cfg.Ticks, sweepMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(sweepMetric))
	for _, tr := range trials {
		for _, n := range names {
			fmt.Fprintf(w, "%g\t", tr.Params[n])
		}
		fmt.Fprintf(w, "%.6f\n", tr.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: %v (%s = %.6f)\n", best.Params, sweepMetric, best.Value)
	return nil
}

// parseSweepParam splits "name=v1,v2" into the name and its values.
func parseSweepParam(arg string) (string, []float64, error) {
	name, list, ok := strings.Cut(arg, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("bad --param %q, want name=v1,v2", arg)
	}
	parts := strings.Split(list, ",")
	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return "", nil, fmt.Errorf("bad --param %q: %w", arg, err)
		}
		values[i] = v
	}
	return name, values, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(cmd.Context(), sc, st, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPRESET\tTICKS\tENERGY\tCONTAINMENT\tRUN")
	for i, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%.3f\t%.3f\t%s\n",
			i+1, r.Step.PresetName(), r.Result.StepsTaken,
			r.Result.Metrics["energy"], r.Result.Metrics["containment"], runID)
	}
	return w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
