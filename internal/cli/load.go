package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mgpai22/podmeta/internal/transcript"
)

// loadTranscript reads and parses path with the configured segment duration
func loadTranscript(path string) (*transcript.Transcript, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("transcript file not found: %s", path)
	}

	tr, err := transcript.LoadFile(path, transcript.Options{
		DefaultSegmentDurationMS: settings.DefaultSegmentDurationMS,
	})
	if err != nil {
		return nil, err
	}

	stats.RecordTranscript(tr.Format.String(), len(tr.Segments))
	logger.Infow("Parsed transcript",
		"file", path,
		"format", tr.Format,
		"segments", len(tr.Segments),
		"duration", transcript.FormatClock(tr.DurationMS()),
	)
	return tr, nil
}

// printLimited prints at most limit items under header and a count of the rest
func printLimited(w io.Writer, header string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d):\n", header, len(items))
	for i, item := range items {
		if i == limit {
			fmt.Fprintf(w, "  ... and %d more\n", len(items)-limit)
			break
		}
		fmt.Fprintf(w, "  %s\n", item)
	}
}
