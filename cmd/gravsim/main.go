package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/analysis"
	"github.com/san-kum/gravsim/internal/automation"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/stream"
	"github.com/san-kum/gravsim/internal/system"
	"github.com/san-kum/gravsim/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	verbose bool
	logFile string
	// Scenario overrides
	configFile  string
	preset      string
	dt          float64
	duration    float64
	gravity     float64
	minDistance float64
	timeScale   float64
	frameRate   int
	maxSteps    int
	// Recording
	recordEvery int
	// Live view
	theme   string
	gifPath string
	// Server
	addr string
	// Plot
	orbit   bool
	svgPath string
	// Sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	sweepBody  int
	// Lyapunov
	perturbation float64
	// Monte Carlo
	trials int
	kick   float64
	seed   int64
)

var logger = logrus.New()

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "n-body gravity simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addScenarioFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario headless and record its trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().IntVar(&recordEvery, "every", 1, "record every n steps")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scenario in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "colour theme")
	liveCmd.Flags().StringVar(&gifPath, "gif", "gravsim.gif", "gif output path")
	liveCmd.Flags().StringVar(&logFile, "log", "", "write logs to this file")

	serveCmd := &cobra.Command{
		Use:   "serve [preset]",
		Short: "stream a scenario over websockets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  serve,
	}
	addScenarioFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&orbit, "orbit", false, "plot orbits in the x-y plane")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the orbits to an svg file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id] [file]",
		Short: "export a recorded run as JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "orbital period of every body in a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [preset]",
		Short: "estimate the largest Lyapunov exponent",
		Args:  cobra.MaximumNArgs(1),
		RunE:  lyapunov,
	}
	addScenarioFlags(lyapunovCmd)
	lyapunovCmd.Flags().Float64Var(&perturbation, "eps", 1e-6, "initial separation")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "sweep a physical constant and plot where a body goes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "g", "parameter to sweep (g, min_distance)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "sweep start")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 2, "sweep end")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 40, "sweep points")
	sweepCmd.Flags().IntVar(&sweepBody, "body", 1, "body index to track")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [preset]",
		Short: "test orbital stability under random velocity kicks",
		Args:  cobra.MaximumNArgs(1),
		RunE:  monteCarlo,
	}
	addScenarioFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	monteCarloCmd.Flags().Float64Var(&kick, "kick", 0.1, "largest velocity kick per axis")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [dt1] [dt2] ...",
		Short: "compare timesteps on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareTimeSteps,
	}
	addScenarioFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := config.PresetInfo()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "%s\t%s\n", name, info[name])
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a scenario file to start from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				if cfg = config.GetPreset(preset); cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	rootCmd.AddCommand(runCmd, liveCmd, serveCmd, listCmd, plotCmd, exportCmd, analyzeCmd, lyapunovCmd, sweepCmd, monteCarloCmd, compareCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "scenario file (yaml)")
	f.StringVar(&preset, "preset", "", "built-in scenario")
	f.Float64Var(&dt, "dt", config.DefaultDt, "fixed timestep")
	f.Float64Var(&duration, "time", config.DefaultDuration, "simulated duration")
	f.Float64Var(&gravity, "g", config.DefaultG, "gravitational constant")
	f.Float64Var(&minDistance, "min-distance", config.DefaultMinDistance, "softening distance")
	f.Float64Var(&timeScale, "speed", config.DefaultTimeScale, "simulated seconds per wall second")
	f.IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")
	f.IntVar(&maxSteps, "max-steps", 0, "cap on steps per frame (0 = unbounded)")
}

// loadScenario resolves the scenario for a command. A positional preset
// name wins over --preset, a --config file replaces the preset, and flags
// the user set override both.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	name := preset
	if len(args) > 0 {
		name = args[0]
	}
	if name != "" {
		if cfg = config.GetPreset(name); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	f := cmd.Flags()
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("time") {
		cfg.Duration = duration
	}
	if f.Changed("g") {
		cfg.G = gravity
	}
	if f.Changed("min-distance") {
		cfg.MinDistance = minDistance
	}
	if f.Changed("speed") {
		cfg.TimeScale = timeScale
	}
	if f.Changed("fps") {
		cfg.FrameRate = frameRate
	}
	if f.Changed("max-steps") {
		cfg.MaxStepsPerTick = maxSteps
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSimulator(cfg *config.Config, log logrus.FieldLogger) (*sim.Simulator, *system.SolarSystem, error) {
	sys, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}
	s := sim.New(cfg.SimConfig())
	s.SetLogger(log)
	s.Initialize(sys, cfg.Dt)
	if !s.IsInitialized() {
		return nil, nil, fmt.Errorf("scenario %s: %w", cfg.Name, dynamo.ErrNotInitialized)
	}
	return s, sys, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	log := logger.WithField("scenario", cfg.Name)
	s, _, err := newSimulator(cfg, log)
	if err != nil {
		return err
	}

	rec := storage.NewRecorder(recordEvery)
	rec.Record(0, s.Bodies())
	energy := metrics.NewEnergyDrift(cfg.G, cfg.MinDistance)
	energy.Baseline(s.Bodies())
	momentum := metrics.NewMomentumDrift()
	momentum.Baseline(s.Bodies())
	s.AddObserver(rec)
	s.AddObserver(energy)
	s.AddObserver(momentum)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s (%d bodies)...\n", cfg.Name, len(s.Bodies()))
	start := time.Now()

	_, err = s.Run(ctx, cfg.Duration, cfg.SimFrameDt())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		log.Warn("interrupted, saving partial run")
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Scenario:    cfg.Name,
		G:           cfg.G,
		MinDistance: cfg.MinDistance,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Steps:       s.Steps(),
		SimTime:     s.SimTime(),
		Dropped:     s.DroppedTime(),
		Fingerprint: storage.FormatFingerprint(s.Bodies()),
		Metrics: map[string]float64{
			energy.Name():   energy.Value(),
			momentum.Name(): momentum.Value(),
		},
	}, rec.Trajectory())
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"run": runID, "steps": s.Steps()}).Debug("run saved")

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", s.Steps())
	fmt.Printf("samples: %d\n", rec.Trajectory().Len())
	fmt.Println("\nmetrics:")
	fmt.Printf("  %s: %.6e\n", energy.Name(), energy.Value())
	fmt.Printf("  %s: %.6e\n", momentum.Name(), momentum.Value())

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	// the terminal belongs to bubbletea, so logs go to a file or nowhere
	log := logrus.New()
	log.SetLevel(logger.GetLevel())
	log.SetOutput(io.Discard)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	}

	build := func(name string) (viz.Model, error) {
		var scenario []string
		if name != "" {
			scenario = []string{name}
		}
		cfg, err := loadScenario(cmd, scenario)
		if err != nil {
			return viz.Model{}, err
		}
		s, sys, err := newSimulator(cfg, log.WithField("scenario", cfg.Name))
		if err != nil {
			return viz.Model{}, err
		}
		return viz.NewModel(s, sys, viz.Options{
			Name:      cfg.Name,
			TimeScale: cfg.TimeScale,
			FrameRate: cfg.FrameRate,
			Theme:     theme,
			GIFPath:   gifPath,
		}), nil
	}

	var m tea.Model
	if len(args) > 0 || preset != "" || configFile != "" {
		live, err := build(firstArg(args))
		if err != nil {
			return err
		}
		m = live
	} else {
		m = viz.NewPicker(config.ListPresets(), config.PresetInfo(), build)
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	switch v := final.(type) {
	case viz.Model:
		return v.Err()
	case viz.Picker:
		if v.Live() != nil {
			return v.Live().Err()
		}
	}
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	log := logger.WithField("scenario", cfg.Name)
	s, _, err := newSimulator(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := stream.NewServer(s, stream.Options{
		FrameRate: cfg.FrameRate,
		TimeScale: cfg.TimeScale,
		Logger:    log,
	})

	mux := http.NewServeMux()
	mux.Handle("/ws", srv)
	httpServer := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("serving")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	go func() {
		if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("stream stopped")
		}
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("shutting down")
	return httpServer.Shutdown(shutdown)
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tBODIES\tSIM TIME\tDT\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.4gs\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Bodies),
			run.SimTime,
			run.Dt,
			run.Steps,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *storage.Trajectory, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	if traj.Len() == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, traj, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", traj.Len())

	if svgPath != "" {
		if err := export.WriteOrbitsSVGFile(svgPath, traj, 800, 800); err != nil {
			return err
		}
		fmt.Printf("orbits written to %s\n\n", svgPath)
	}

	if orbit {
		orbits := make([]*analysis.OrbitPortrait, 0, len(traj.Names))
		for _, name := range traj.Names {
			orbits = append(orbits, analysis.NewOrbitPortrait(name, traj.Series(name, 0), traj.Series(name, 1)))
		}
		fmt.Println(analysis.ToASCII(orbits, 70, 30))
		return nil
	}

	const maxPlots = 6
	plotted := 0
	for _, name := range traj.Names {
		for axis, label := range []string{"x", "y"} {
			if plotted == maxPlots {
				return nil
			}
			graph := asciigraph.Plot(traj.Series(name, axis),
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("%s.%s vs time", name, label)),
			)
			fmt.Println(graph)
			fmt.Println()
			plotted++
		}
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return storage.ExportJSON(os.Stdout, meta, traj)
	}
	if err := storage.ExportJSONFile(args[1], meta, traj); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", args[1])
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	times := traj.Times()
	if len(times) < 4 {
		return fmt.Errorf("need at least 4 samples, got %d", len(times))
	}
	sampleDt := times[1] - times[0]

	fmt.Printf("period analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d every %.4gs\n\n", len(times), sampleDt)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tPERIOD X\tPERIOD Y")
	for _, name := range traj.Names {
		px := analysis.DominantPeriod(traj.Series(name, 0), sampleDt)
		py := analysis.DominantPeriod(traj.Series(name, 1), sampleDt)
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, formatPeriod(px), formatPeriod(py))
	}
	return w.Flush()
}

func formatPeriod(p float64) string {
	if p == 0 {
		return "-"
	}
	return fmt.Sprintf("%.3fs", p)
}

func lyapunov(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	sys, err := cfg.Build()
	if err != nil {
		return err
	}

	lambda := analysis.LyapunovExponent(sys.Bodies(), cfg.SimConfig(), cfg.Dt, cfg.Duration, perturbation)

	fmt.Printf("scenario: %s\n", cfg.Name)
	fmt.Printf("largest lyapunov exponent: %.6f\n", lambda)
	if lambda > 0 {
		fmt.Printf("predictability horizon: ~%.1fs\n", 1/lambda)
	}
	return nil
}

func sweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	sys, err := cfg.Build()
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s over [%g, %g] for %s...\n", sweepParam, sweepMin, sweepMax, cfg.Name)
	data, err := analysis.Sweep(sys.Bodies(), cfg.SimConfig(), analysis.SweepParams{
		Param:     sweepParam,
		Min:       sweepMin,
		Max:       sweepMax,
		Steps:     sweepSteps,
		Body:      sweepBody,
		Dt:        cfg.Dt,
		Transient: cfg.Duration / 2,
		Record:    cfg.Duration / 2,
	})
	if err != nil {
		return err
	}
	fmt.Println(analysis.SweepToASCII(data, 70, 24))
	return nil
}

func compareTimeSteps(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args[:1])
	if err != nil {
		return err
	}
	sys, err := cfg.Build()
	if err != nil {
		return err
	}

	steps := make([]float64, 0, len(args)-1)
	for _, a := range args[1:] {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid timestep %q: %w", a, err)
		}
		steps = append(steps, v)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("comparing timesteps for %s (duration=%.1fs)\n\n", cfg.Name, cfg.Duration)
	start := time.Now()
	results, err := sim.NewEnsemble(sys, cfg.SimConfig()).Run(ctx, steps, cfg.Duration)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tSIM TIME\tENERGY DRIFT\tFINGERPRINT")
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%d\t%.2f\t%.2e\t%016x\n", r.TimeStep, r.Steps, r.SimTime, r.EnergyDrift, r.Fingerprint)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\ncompleted in %v\n", time.Since(start))
	return nil
}

func monteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	sys, err := cfg.Build()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d trials of %s (kick=%g, seed=%d)...\n", trials, cfg.Name, kick, seed)
	results, err := automation.RunMonteCarlo(ctx, sys.Bodies(), automation.MonteCarloConfig{
		Sim:          cfg.SimConfig(),
		Dt:           cfg.Dt,
		Duration:     cfg.Duration,
		Perturbation: kick,
		Trials:       trials,
		Seed:         seed,
	}, logger.WithField("scenario", cfg.Name))
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	worst := 0.0
	for _, r := range results {
		worst = max(worst, r.EnergyDrift)
	}
	fmt.Printf("stable: %d\n", stable)
	fmt.Printf("unstable: %d\n", unstable)
	fmt.Printf("stability: %.1f%%\n", 100*float64(stable)/float64(len(results)))
	fmt.Printf("worst energy drift: %.2e\n", worst)
	return nil
}
