package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/milanbalazs/ContSysSim/sim"
)

var (
	// CLI flags
	configPath      string  // Path to the YAML simulation file
	seed            int64   // Seed driving every fluctuation draw
	logLevel        string  // Log verbosity level
	horizon         float64 // Optional override of the configured duration
	monitorInterval float64 // Optional override of the sampling period
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "contsyssim",
	Short: "Discrete-event simulator for containerized datacenter workloads",
}

// runCmd executes a simulation from a YAML configuration file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := LoadSimulationConfig(configPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if horizon > 0 {
			cfg.Duration = horizon
		}
		if monitorInterval > 0 {
			cfg.MonitorInterval = monitorInterval
		}

		simulator, err := sim.NewSimulator(cfg, seed)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Infof("Starting simulation '%s' (seed %d, horizon %.2f)",
			cfg.Datacenter.Name, seed, cfg.Duration)
		simulator.Run()
		simulator.PrintReport()
	},
}

// validateCmd parses and validates a configuration without running it
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a simulation configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := LoadSimulationConfig(configPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("%s: configuration is valid", configPath)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "simulation.yaml", "Path to the YAML simulation configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Random seed; identical seeds reproduce identical runs")
	runCmd.Flags().Float64Var(&horizon, "horizon", 0, "Override the configured simulation duration (0 = use config)")
	runCmd.Flags().Float64Var(&monitorInterval, "monitor-interval", 0, "Override the sampling period (0 = use config)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
