package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	configapp "sysprobe/internal/config/application"
	probesapp "sysprobe/internal/probes/application"
)

func newProbesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probes",
		Short: "Validate the configuration and list its probes",
		Long: `Parse and validate the probe configuration without running anything.

Example:
  sysprobe probes -c probes.yaml`,
		RunE: listProbes,
	}
}

func listProbes(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadRuntimeConfig(false)
	if err != nil {
		return err
	}

	raw, err := configapp.ReadConfigFile(cfg.ConfigPath)
	if err != nil {
		return err
	}

	instance, _, err := configapp.ParseConfig(raw)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tINTERVAL\tTIMEOUT\tCOMMAND")
	for _, rawProbe := range instance.Probes {
		_, probeCfg, _, err := probesapp.BuildProbe(instance.Name, rawProbe, nil, nil)
		if err != nil {
			return err
		}

		timeout := "-"
		if probeCfg.Timeout > 0 {
			timeout = probeCfg.Timeout.Std().String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			probeCfg.Name, probeCfg.Type, probeCfg.Interval.Std(), timeout, probeCfg.CommandOrDefault())
	}
	return w.Flush()
}
