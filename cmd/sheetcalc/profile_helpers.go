package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheetcalc/internal/prof"
)

var profSession *prof.Session

func startProfiling(cmd *cobra.Command) error {
	root := cmd.Root()
	cpuPath, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memPath, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if cpuPath == "" && memPath == "" && tracePath == "" {
		return nil
	}
	profSession, err = prof.Start(cpuPath, tracePath, memPath)
	return err
}

func stopProfiling() {
	if profSession == nil {
		return
	}
	if err := profSession.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", err)
	}
	profSession = nil
}
