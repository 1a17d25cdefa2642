package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgpai22/podmeta/internal/subtitle"
)

var validateCmd = &cobra.Command{
	Use:   "validate [subtitle_file]",
	Short: "Check an SRT file for format violations",
	Long: `Check an SRT file for numbering, timestamp and text problems.

Every violation is collected; the command fails when any is found.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read subtitle file: %w", err)
	}

	violations := subtitle.ValidateSRT(string(data))
	stats.RecordSRTViolations(len(violations))

	if len(violations) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: no violations found\n", args[0])
		return nil
	}

	printLimited(cmd.OutOrStdout(), "Violations", violations, settings.MaxWarnings)
	return fmt.Errorf("%s: %d SRT violation(s) found", args[0], len(violations))
}
