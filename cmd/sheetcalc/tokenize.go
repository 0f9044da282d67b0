package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheetcalc/internal/diagfmt"
	"sheetcalc/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] formula",
	Short: "Tokenize a formula",
	Long:  `Tokenize breaks a formula into tokens; cell references show the value they resolved to`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	addSheetFlag(tokenizeCmd)
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	inputs, err := argInputs(args)
	if err != nil {
		return err
	}
	resolver, err := s.resolver(cmd)
	if err != nil {
		return err
	}

	result := driver.Tokenize(inputs[0], resolver, s.maxDiagnostics)

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     s.useColor(os.Stderr),
			ShowFixes: true,
		})
	}

	// Выводим токены в выбранном формате
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errSilentExit
	}
	return nil
}
