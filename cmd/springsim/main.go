package main

import (
	"fmt"
	"os"

	"github.com/san-kum/springsim/internal/diag"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	dataDir    string
	configFile string
	verbose    bool

	preset     string
	from       float64
	to         float64
	stiffness  float64
	damping    float64
	mass       float64
	integrator string
	maxFrames  int
	clamp      bool
	retargets  []string

	outPath string

	tuneMetric string
	kMin, kMax float64
	cMin, cMax float64
	tuneSteps  int

	sweepParam         string
	sweepMin, sweepMax float64
	sweepSteps         int
)

// main registers the springsim commands and exits with status 1 when the
// selected command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "springsim",
		Short:         "spring animation lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = diag.L().Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".springsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "animate one spring headless and save the run",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	springFlags(runCmd)
	runCmd.Flags().Float64Var(&from, "from", 0, "start value")
	runCmd.Flags().Float64Var(&to, "to", 100, "target value")
	runCmd.Flags().IntVar(&maxFrames, "frames", 1200, "frame limit")
	runCmd.Flags().StringArrayVar(&retargets, "retarget", nil, "retarget after a frame, as frame:value (repeatable)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot position and velocity of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a run's trajectory as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a run's metadata and trajectory as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "measure ringing frequency against the predicted period",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "describe a spring: damping ratio, periods, regime and warnings",
		Args:  cobra.NoArgs,
		RunE:  inspectSpring,
	}
	springFlags(inspectCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list spring presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "run the same spring with several integrators",
		RunE:  compareIntegrators,
	}
	springFlags(compareCmd)
	compareCmd.Flags().Float64Var(&from, "from", 0, "start value")
	compareCmd.Flags().Float64Var(&to, "to", 100, "target value")
	compareCmd.Flags().IntVar(&maxFrames, "frames", 1200, "frame limit")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search stiffness and damping for the best metric",
		Args:  cobra.NoArgs,
		RunE:  tuneSpring,
	}
	springFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "settle_time", "metric to minimize")
	tuneCmd.Flags().Float64Var(&kMin, "k-min", 100, "lowest stiffness")
	tuneCmd.Flags().Float64Var(&kMax, "k-max", 400, "highest stiffness")
	tuneCmd.Flags().Float64Var(&cMin, "c-min", 10, "lowest damping")
	tuneCmd.Flags().Float64Var(&cMax, "c-max", 60, "highest damping")
	tuneCmd.Flags().IntVar(&tuneSteps, "steps", 6, "grid points per parameter")
	tuneCmd.Flags().Float64Var(&from, "from", 0, "start value")
	tuneCmd.Flags().Float64Var(&to, "to", 100, "target value")
	tuneCmd.Flags().IntVar(&maxFrames, "frames", 1200, "frame limit")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a trail, a group and keyframes in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	springFlags(liveCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of chained animations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one spring parameter and report each run",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	springFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "damping", "parameter to vary (stiffness, damping, mass)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 5, "lowest value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 50, "highest value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of runs")
	sweepCmd.Flags().Float64Var(&from, "from", 0, "start value")
	sweepCmd.Flags().Float64Var(&to, "to", 100, "target value")
	sweepCmd.Flags().IntVar(&maxFrames, "frames", 1200, "frame limit")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, analyzeCmd, inspectCmd, presetsCmd, compareCmd, tuneCmd, liveCmd, scenarioCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func springFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "spring preset")
	cmd.Flags().Float64Var(&stiffness, "stiffness", 170, "spring stiffness")
	cmd.Flags().Float64Var(&damping, "damping", 26, "spring damping")
	cmd.Flags().Float64Var(&mass, "mass", 1, "spring mass")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	cmd.Flags().BoolVar(&clamp, "clamp", false, "clamp between start and target")
}

// setupLogger installs the process logger: development output with
// --verbose, warnings and errors otherwise.
func setupLogger() error {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Encoding = "console"
		logger, err = cfg.Build()
	}
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	diag.SetLogger(logger)
	return nil
}
