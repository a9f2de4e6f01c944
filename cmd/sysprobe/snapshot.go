package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	probesdomain "sysprobe/internal/probes/domain"
)

var (
	snapshotWait   time.Duration
	snapshotOutput string
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "snapshot",
		Aliases: []string{"ss"},
		Short:   "Print the snapshot after the probes ran for a while",
		Long: `Start every configured probe, wait and print the snapshot as JSON.

Probes that did not produce a value within the wait keep their default.
The bandwidth probe needs two samples, so wait longer than its interval.

Example:
  sysprobe snapshot
  sysprobe snapshot --wait 6s -o snapshot.json`,
		RunE: runSnapshot,
	}

	cmd.Flags().DurationVar(&snapshotWait, "wait", 2500*time.Millisecond, "Time to let the probes run")
	cmd.Flags().StringVarP(&snapshotOutput, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, appLogger, err := loadRuntimeConfig(false)
	if err != nil {
		return err
	}

	sigCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	eng, err := startEngine(sigCtx, appLogger, cfg)
	if err != nil {
		return err
	}

	select {
	case <-time.After(snapshotWait):
	case <-sigCtx.Done():
	}

	entries := eng.snapshot.Entries()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := eng.stop(shutdownCtx); err != nil {
		appLogger.Warn("Probes did not stop in time", "err", err)
	}

	return writeSnapshotOutput(entries)
}

func writeSnapshotOutput(entries []probesdomain.Entry) error {
	output, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if snapshotOutput == "" {
		fmt.Println(string(output))
		return nil
	}

	if err := os.WriteFile(snapshotOutput, output, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Written to: %s\n", snapshotOutput)
	return nil
}
