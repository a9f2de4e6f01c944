package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configapp "sysprobe/internal/config/application"
	"sysprobe/internal/infrastructure/logger"
)

var (
	flags   configapp.Flags
	envFile string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sysprobe",
		Short: "Live host metrics probe engine",
		Long: `sysprobe runs a set of independent probes that sample host metrics
(CPU, memory, disk, network, reachability) on their own intervals and keeps
the latest value of each in a snapshot.

Commands:
  run        Run the probes until interrupted, optionally serving the API
  snapshot   Run the probes for a while and print the snapshot as JSON
  probes     Validate a configuration and list its probes`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.ConfigPath, "config", "c", "", "Probe configuration file, YAML or JSON (default: built-in)")
	pf.StringVar(&flags.LogLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR")
	pf.StringVar(&flags.LogFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&flags.LogOutput, "log-output", "", "Log output: stderr, stdout or a file path")
	pf.StringVar(&envFile, "env-file", "", "Environment file (default: .env)")

	root.AddCommand(
		newRunCmd(),
		newSnapshotCmd(),
		newProbesCmd(),
	)

	return root
}

// loadRuntimeConfig merges the command line with the environment and
// installs the configured logger as the default one. Commands that do not
// serve get neither the API nor the snapshot mirror.
func loadRuntimeConfig(serve bool) (*configapp.RuntimeConfig, *logger.Logger, error) {
	configapp.LoadEnvFile(logger.DefaultLogger(), envFile)

	cfg := configapp.LoadRuntimeConfig(flags)
	if !serve {
		cfg.Listen = ""
		cfg.DBPath = ""
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.LogOutput)
	logger.SetDefaultLogger(appLogger)
	return cfg, appLogger, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
