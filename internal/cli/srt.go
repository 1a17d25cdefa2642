package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/podmeta/internal/output"
	"github.com/mgpai22/podmeta/internal/subtitle"
)

var srtCmd = &cobra.Command{
	Use:   "srt [transcript_file]",
	Short: "Convert a timestamped transcript to subtitles",
	Long: `Convert a timestamped transcript to SRT (or WebVTT) subtitles.

Segments are sorted by start time, overlaps are clamped and segments
without a valid duration are extended before encoding. Every repair is
reported as a warning; the subtitles are always written.

Examples:
  podmeta srt episode.txt
  podmeta srt episode.txt --format vtt -o subs/episode.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runSRT,
}

func init() {
	rootCmd.AddCommand(srtCmd)

	srtCmd.Flags().
		StringP("format", "f", "", "Subtitle format: srt or vtt (default from output extension, else srt)")
}

func runSRT(cmd *cobra.Command, args []string) error {
	formatStr, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	format := subtitle.Format(strings.ToLower(strings.TrimSpace(formatStr)))
	if formatStr == "" {
		format = subtitle.GetFormatFromExtension(outputPath)
	}
	enc, err := subtitle.NewEncoder(format)
	if err != nil {
		return err
	}

	tr, err := loadTranscript(args[0])
	if err != nil {
		return err
	}
	if !tr.HasTimestamps() {
		return fmt.Errorf("%s has no timestamps (format %s); subtitles need timing",
			tr.FilePath, tr.Format)
	}

	result := subtitle.Convert(enc, tr.Segments)
	stats.RecordRepairWarnings(len(result.Errors))
	if len(result.Errors) > 0 {
		logger.Warnw("Repaired segments before encoding", "warnings", len(result.Errors))
	}
	printLimited(cmd.ErrOrStderr(), "Warnings", result.Errors, settings.MaxWarnings)

	var path string
	if outputPath != "" {
		path = outputPath
		err = subtitle.WriteFile(path, result.Content)
	} else {
		w := output.NewWriter(settings.OutputDir, tr.FilePath, "")
		path, err = w.WriteSubtitles(result.Content, format)
	}
	if err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(path)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles written: %s\n", absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Segments: %d\n", len(tr.Segments))
	fmt.Fprintf(cmd.OutOrStdout(), "  Format: %s\n", format)
	return nil
}
