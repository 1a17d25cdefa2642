package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgpai22/podmeta/internal/transcript"
)

var detectCmd = &cobra.Command{
	Use:   "detect [transcript_file]",
	Short: "Detect the layout of a transcript",
	Long: `Detect which timestamp layout a transcript uses and report the
number of segments and total duration.

Recognized layouts:
  speaker-compact  MM:SS.cc timestamp lines followed by speaker and text
  time-range       HH:MM:SS - HH:MM:SS ranges followed by text
  srt              SubRip subtitle blocks
  plain            anything else`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	tr, err := loadTranscript(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:     %s\n", tr.FilePath)
	fmt.Fprintf(out, "Format:   %s\n", tr.Format)
	fmt.Fprintf(out, "Segments: %d\n", len(tr.Segments))
	fmt.Fprintf(out, "Duration: %s\n", transcript.FormatClock(tr.DurationMS()))
	return nil
}
