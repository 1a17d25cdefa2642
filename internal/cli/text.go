package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var textCmd = &cobra.Command{
	Use:   "text [transcript_file]",
	Short: "Print a transcript as plain or timestamped text",
	Args:  cobra.ExactArgs(1),
	RunE:  runText,
}

func init() {
	rootCmd.AddCommand(textCmd)

	textCmd.Flags().
		Bool("timestamps", false, "Prefix each segment with its start time and speaker")
}

func runText(cmd *cobra.Command, args []string) error {
	timestamps, _ := cmd.Flags().GetBool("timestamps")

	tr, err := loadTranscript(args[0])
	if err != nil {
		return err
	}

	if timestamps {
		fmt.Fprintln(cmd.OutOrStdout(), tr.TimestampedText())
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), tr.PlainText())
	}
	return nil
}
