package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sheetcalc/internal/version"
)

type versionOptions struct {
	format   string
	showHash bool
	showDate bool
}

const versionTagline = "cells in, numbers out"

var (
	versionFormat   string
	versionShowHash bool
	versionShowDate bool
	versionShowFull bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include git commit hash")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "include build timestamp")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show sheetcalc build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := versionOptions{
			format:   strings.ToLower(versionFormat),
			showHash: versionShowHash || versionShowFull,
			showDate: versionShowDate || versionShowFull,
		}

		switch opts.format {
		case "pretty", "json":
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}

		if opts.format == "json" {
			return renderVersionJSON(cmd.OutOrStdout(), opts)
		}

		colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
		color, err := parseSwitch("color", colorFlag)
		if err != nil {
			return err
		}
		renderVersionPretty(cmd.OutOrStdout(), opts, color.enabledFor(os.Stdout))
		return nil
	},
}

func renderVersionPretty(out io.Writer, opts versionOptions, useColor bool) {
	info := version.Current()
	fmt.Fprintf(out, "sheetcalc %s, %s\n", version.Colored(useColor), versionTagline)
	if opts.showHash {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(info.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, opts versionOptions) error {
	info := version.Current()
	if !opts.showHash {
		info.GitCommit = ""
	}
	if !opts.showDate {
		info.BuildDate = ""
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

func valueOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
