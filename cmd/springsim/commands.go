package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/springsim/internal/analysis"
	"github.com/san-kum/springsim/internal/automation"
	"github.com/san-kum/springsim/internal/config"
	"github.com/san-kum/springsim/internal/integrators"
	"github.com/san-kum/springsim/internal/metrics"
	"github.com/san-kum/springsim/internal/optim"
	"github.com/san-kum/springsim/internal/physics"
	"github.com/san-kum/springsim/internal/sim"
	"github.com/san-kum/springsim/internal/storage"
	"github.com/san-kum/springsim/internal/viz"
	"github.com/spf13/cobra"
)

// loadConfig layers the config file, then --preset, then any spring or run
// flag given explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}
	if flags.Changed("stiffness") {
		cfg.Spring.Stiffness = stiffness
	}
	if flags.Changed("damping") {
		cfg.Spring.Damping = damping
	}
	if flags.Changed("mass") {
		cfg.Spring.Mass = mass
	}
	if flags.Changed("integrator") {
		cfg.Spring.Integrator = integrator
	}
	if flags.Changed("clamp") {
		cfg.Spring.Clamp = clamp
	}
	if flags.Changed("from") {
		cfg.Run.From = from
	}
	if flags.Changed("to") {
		cfg.Run.To = to
	}
	if flags.Changed("frames") {
		cfg.Run.MaxFrames = maxFrames
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Spring:    cfg.SpringConfig(),
		From:      cfg.Run.From,
		To:        cfg.Run.To,
		MaxFrames: cfg.Run.MaxFrames,
	}
}

func newSimulator(c sim.Config) *sim.Simulator {
	s := sim.New()
	sp := physics.Spring{Stiffness: c.Spring.Stiffness, Damping: c.Spring.Damping, Mass: c.Spring.Mass}
	for _, m := range metrics.Standard(sp, c.Spring.RestDelta) {
		s.AddMetric(m)
	}
	return s
}

func parseRetargets(args []string) ([]sim.Retarget, error) {
	out := make([]sim.Retarget, 0, len(args))
	for _, arg := range args {
		f, v, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("retarget %q: want frame:value", arg)
		}
		frame, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("retarget %q: %w", arg, err)
		}
		val, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("retarget %q: %w", arg, err)
		}
		out = append(out, sim.Retarget{Frame: frame, To: val})
	}
	return out, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc := simConfig(cfg)
	if sc.Retargets, err = parseRetargets(retargets); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("animating %.2f -> %.2f (k=%.1f c=%.1f m=%.2f, %s)\n",
		sc.From, sc.To, sc.Spring.Stiffness, sc.Spring.Damping, sc.Spring.Mass, sc.Spring.Integrator)
	start := time.Now()

	result, err := newSimulator(sc).Run(cmd.Context(), sc)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.MetadataFor(cfg.Preset, sc, result), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d (settled: %v)\n", result.Frames, result.Settled)
	fmt.Println("\nmetrics:")
	for _, name := range []string{"overshoot", "settle_time", "peak_velocity", "energy"} {
		fmt.Printf("  %-14s %.6f\n", name+":", result.Metrics[name])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tK\tC\tM\tINTEG\tFRAMES\tSETTLED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.1f\t%.2f\t%s\t%d\t%v\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Stiffness,
			run.Damping,
			run.Mass,
			run.Integrator,
			run.Frames,
			run.Settled,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(tr.Positions) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("spring: k=%.1f c=%.1f m=%.2f\n", meta.Stiffness, meta.Damping, meta.Mass)
	fmt.Printf("samples: %d\n\n", len(tr.Positions))

	fmt.Println(asciigraph.PlotMany([][]float64{tr.Positions, tr.Targets},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Red),
		asciigraph.Caption("position and target"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(tr.Velocities,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("velocity"),
	))
	return nil
}

func exportTo(write func(io.Writer) error) error {
	if outPath == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return exportTo(func(w io.Writer) error { return st.ExportCSV(args[0], w) })
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return exportTo(func(w io.Writer) error { return st.ExportJSON(args[0], w) })
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(tr.Positions) < 4 {
		return fmt.Errorf("run %s is too short to analyze", meta.ID)
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	ps := analysis.PowerSpectrum(tr.Positions)
	fmt.Println(asciigraph.Plot(ps[:max(len(ps)/4, 2)],
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (position)"),
	))
	fmt.Println()

	fmt.Printf("regime:            %s\n", physics.Classify(meta.Stiffness, meta.Damping, meta.Mass))
	predicted := physics.DampedPeriod(meta.Stiffness, meta.Damping, meta.Mass)
	if freq := analysis.DominantFrequency(tr.Positions, physics.FrameStep); freq > 0 {
		fmt.Printf("dominant frequency: %.3f hz\n", freq)
		fmt.Printf("measured period:    %.3f s\n", 1/freq)
	} else {
		fmt.Println("dominant frequency: none (no ringing)")
	}
	fmt.Printf("predicted period:   %.3f s\n", predicted)
	return nil
}

func inspectSpring(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p := cfg.Spring.Params()
	k, c, m := p.Stiffness, p.Damping, p.Mass

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "stiffness\t%.3f\n", k)
	fmt.Fprintf(w, "damping\t%.3f\n", c)
	fmt.Fprintf(w, "mass\t%.3f\n", m)
	fmt.Fprintf(w, "natural frequency\t%.3f rad/s\n", physics.NaturalFrequency(k, m))
	fmt.Fprintf(w, "damping ratio\t%.3f\n", physics.DampingRatio(k, c, m))
	fmt.Fprintf(w, "natural period\t%.3f s\n", physics.NaturalPeriod(k, m))
	fmt.Fprintf(w, "damped period\t%.3f s\n", physics.DampedPeriod(k, c, m))
	fmt.Fprintf(w, "regime\t%s\n", physics.Classify(k, c, m))
	if err := w.Flush(); err != nil {
		return err
	}

	advice := physics.Diagnose(p)
	if len(advice) == 0 {
		return nil
	}
	fmt.Println("\nwarnings:")
	for _, a := range advice {
		fmt.Printf("  %s: %s\n", a.Field, a.Message)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTIFFNESS\tDAMPING\tMASS\tRATIO\tREGIME")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.1f\t%.3f\t%s\n",
			name, p.Stiffness, p.Damping, p.Mass,
			physics.DampingRatio(p.Stiffness, p.Damping, p.Mass),
			physics.Classify(p.Stiffness, p.Damping, p.Mass),
		)
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	base := simConfig(cfg)
	fmt.Printf("comparing integrators for %.2f -> %.2f (k=%.1f c=%.1f m=%.2f)\n\n",
		base.From, base.To, base.Spring.Stiffness, base.Spring.Damping, base.Spring.Mass)
	fmt.Printf("%-10s  %8s  %12s  %12s  %12s  %10s\n", "integrator", "frames", "final", "overshoot", "settle_s", "time_ms")
	fmt.Println(strings.Repeat("-", 72))

	for _, name := range names {
		if _, err := integrators.ByName(name); err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}
		sc := base
		sc.Spring.Integrator = name

		start := time.Now()
		result, err := newSimulator(sc).Run(cmd.Context(), sc)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}

		fmt.Printf("%-10s  %8d  %12.6f  %12.6f  %12.4f  %10.2f\n",
			name, result.Frames, result.Final().Position(),
			result.Metrics["overshoot"], result.Metrics["settle_time"],
			float64(elapsed.Microseconds())/1000)
	}
	return nil
}

func tuneSpring(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	g := optim.NewGridSearch(
		[]string{optim.Stiffness, optim.Damping},
		[][]float64{optim.Range(kMin, kMax, tuneSteps), optim.Range(cMin, cMax, tuneSteps)},
	)
	best, val, err := g.Search(cmd.Context(), simConfig(cfg), newSimulator, tuneMetric)
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no grid point produced %s", tuneMetric)
	}

	k, c := best[optim.Stiffness], best[optim.Damping]
	fmt.Printf("best %s: %.4f\n", tuneMetric, val)
	fmt.Printf("  stiffness: %.2f\n", k)
	fmt.Printf("  damping:   %.2f\n", c)
	fmt.Printf("  ratio:     %.3f\n", physics.DampingRatio(k, c, cfg.Spring.Mass))
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
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
		fmt.Printf("  %s\n", sc.Description)
	}
	fmt.Println()

	results, runErr := automation.RunScenario(cmd.Context(), sc, cfg, newSimulator)
	for i, r := range results {
		name := r.Step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}
		fmt.Printf("%-12s %8.2f -> %-8.2f frames=%-5d settled=%v overshoot=%.4f\n",
			name, r.Config.From, r.Config.To, r.Result.Frames, r.Result.Settled, r.Result.Metrics["overshoot"])

		if r.Step.SaveAs == "" {
			continue
		}
		runID, err := st.Save(storage.MetadataFor(r.Preset, r.Config, r.Result), r.Result)
		if err != nil {
			return err
		}
		fmt.Printf("%12s saved %s as %s\n", "", r.Step.SaveAs, runID)
	}
	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), automation.ParameterSweep{
		Param: sweepParam,
		Min:   sweepMin,
		Max:   sweepMax,
		Steps: sweepSteps,
	}, simConfig(cfg), newSimulator)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFRAMES\tSETTLED\tFINAL\tOVERSHOOT\tSETTLE_S\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%d\t%v\t%.4f\t%.4f\t%.4f\n",
			r.ParamValue, r.Frames, r.Settled, r.FinalState.Position(),
			r.Metrics["overshoot"], r.Metrics["settle_time"])
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	m, err := viz.NewLive(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(contextOf(cmd)))
	_, err = p.Run()
	return err
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
