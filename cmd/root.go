package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/delivery-sim/delivery-sim/sim"
	"github.com/delivery-sim/delivery-sim/sim/trace"
)

var (
	// CLI flags for the scenario
	seed           int64   // Master seed for operator service sampling
	horizon        float64 // Simulated time at which the run ends
	numRestaurants int     // Number of restaurant sources
	numOperators   int     // Number of operators
	bufferCapacity int     // Order buffer slots
	interval       float64 // Time between orders per restaurant
	processingMean float64 // Exponential service mean per operator
	scenarioFile   string  // Optional YAML scenario overriding the flags above
	logLevel       string  // Log verbosity level
	showProgress   bool    // Display a progress bar while running
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "delivery-sim",
	Short: "Discrete-event simulator for a food-delivery order-processing center",
}

// runCmd executes one simulation run using parameters from CLI flags or a
// scenario file.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the delivery-center simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q", logLevel)
		}
		logrus.SetLevel(level)

		cfg := sim.UniformConfig(numRestaurants, numOperators, bufferCapacity,
			interval, processingMean, horizon, seed)
		if scenarioFile != "" {
			loaded, err := sim.LoadConfig(scenarioFile)
			if err != nil {
				return err
			}
			cfg = *loaded
			logrus.Infof("using scenario file %s", scenarioFile)
		}

		s, err := sim.NewSimulator(cfg)
		if err != nil {
			return err
		}
		tr := trace.New()
		s.AttachTrace(tr)
		s.InitializeSimulation(cfg.Horizon)

		if showProgress {
			runWithProgress(s, cfg.Horizon)
		} else {
			s.RunAuto(cfg.Horizon)
		}

		printSummary(s, tr)
		return nil
	},
}

// runWithProgress steps the simulation manually so the bar can track
// simulated time against the horizon.
func runWithProgress(s *sim.Simulator, horizon float64) {
	bar := progressbar.Default(int64(horizon), "simulating")
	for {
		next, ok := s.NextEventTime()
		if !ok || next > horizon {
			break
		}
		s.Step()
		_ = bar.Set(int(s.CurrentTime()))
	}
	_ = bar.Finish()
	fmt.Println()
}

// printSummary writes the end-of-run report. Presentation lives here, not in
// the engine.
func printSummary(s *sim.Simulator, tr *trace.Trace) {
	stats := s.Stats()
	summary := tr.Summarize()

	fmt.Println("=== Simulation Summary ===")
	fmt.Printf("Simulated time       : %.3f\n", s.CurrentTime())
	fmt.Printf("Steps                : %d\n", s.StepCount())
	fmt.Printf("Orders generated     : %d\n", stats.TotalOrders())
	fmt.Printf("Orders processed     : %d\n", stats.TotalProcessed())
	fmt.Printf("Orders rejected      : %d\n", stats.TotalRejected())
	fmt.Printf("Rejection rate       : %.2f%%\n", stats.RejectionRate()*100)

	fmt.Println("\nPer restaurant:")
	for id := 0; id < stats.NumRestaurants(); id++ {
		rs := stats.RestaurantStats(id)
		fmt.Printf("  restaurant %d: generated=%d processed=%d rejected=%d (%.2f%%) avg wait=%.3f avg service=%.3f\n",
			id, rs.Generated, rs.Processed, rs.Rejected,
			stats.RestaurantRejectionRate(id)*100,
			stats.AvgWaitTime(id), stats.AvgProcessTime(id))
	}

	fmt.Println("\nOperators:")
	for _, op := range s.OperatorSnapshots() {
		fmt.Printf("  operator %d: served=%d busy=%v\n", op.OperatorID, op.ProcessedCount, op.Busy)
	}

	fmt.Println("\nEvents by kind:")
	kinds := make([]string, 0, len(summary.ByKind))
	for kind := range summary.ByKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Printf("  %-28s %d\n", kind, summary.ByKind[kind])
	}
}

func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "master seed for service-time sampling")
	runCmd.Flags().Float64Var(&horizon, "horizon", 100, "simulated time at which the run ends")
	runCmd.Flags().IntVar(&numRestaurants, "restaurants", 3, "number of restaurant sources")
	runCmd.Flags().IntVar(&numOperators, "operators", 2, "number of operators")
	runCmd.Flags().IntVar(&bufferCapacity, "buffer-capacity", 5, "order buffer slots")
	runCmd.Flags().Float64Var(&interval, "arrival-interval", 2.0, "time between orders per restaurant")
	runCmd.Flags().Float64Var(&processingMean, "processing-mean", 3.0, "exponential service mean per operator")
	runCmd.Flags().StringVar(&scenarioFile, "scenario", "", "YAML scenario file (overrides the flags above)")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&showProgress, "progress", false, "display a progress bar")

	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
