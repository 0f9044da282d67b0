package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheetcalc/internal/driver"
	"sheetcalc/internal/formula"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] formula",
	Short: "Apply suggested repairs to a formula",
	Long: `Fix applies the repairs attached to diagnostics one at a time until the
formula parses or no repair is left, then prints the repaired text.`,
	Example: `  sheetcalc fix "=ABS(0-1"`,
	Args:    cobra.ExactArgs(1),
	RunE:    runFix,
}

func init() {
	addSheetFlag(fixCmd)
	fixCmd.Flags().Int("rounds", driver.DefaultFixRounds, "maximum number of repairs to apply")
	fixCmd.Flags().BoolP("verbose", "v", false, "list applied repairs on stderr")
}

func runFix(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	rounds, err := cmd.Flags().GetInt("rounds")
	if err != nil {
		return fmt.Errorf("failed to get rounds flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	inputs, err := argInputs(args)
	if err != nil {
		return err
	}
	resolver, err := s.resolver(cmd)
	if err != nil {
		return err
	}

	res := driver.Fix(inputs[0], resolver, s.cfg.Eval.MaxDepth, rounds)
	if verbose {
		for _, a := range res.Applied {
			fmt.Fprintf(os.Stderr, "applied %s: %s\n", a.ID, a.Title)
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=%s\n", res.Text)
	if res.Err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", inputs[0].Label, res.Err)
		return errSilentExit
	}
	_, err = fmt.Fprintf(out, "= %s\n", formula.FormatValue(res.Value))
	return err
}
