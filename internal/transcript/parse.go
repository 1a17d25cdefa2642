package transcript

import (
	"fmt"
	"os"
	"strings"
)

// ParseDocument detects the layout of lines and builds its segments. Plain
// text yields no segments and no error; callers fall back to the raw content.
func ParseDocument(lines []string, opts Options) (Format, []Segment, error) {
	format := DetectFormat(lines)
	if format == FormatPlainText {
		return FormatPlainText, nil, nil
	}

	segments, err := ParseAs(format, lines, opts)
	if err != nil {
		return format, nil, err
	}
	return format, segments, nil
}

// ParseAs builds segments for a caller-chosen format. It fails with
// ErrFormatNotRecognized when no line anywhere matches that format's
// timestamp grammar.
func ParseAs(format Format, lines []string, opts Options) ([]Segment, error) {
	var match func(string) bool
	switch format {
	case FormatSpeakerCompact:
		match = isCompactTimestamp
	case FormatTimeRange:
		match = isTimeRange
	case FormatSRT:
		match = isSRTTiming
	default:
		return nil, fmt.Errorf("%w: no timestamp grammar for %s",
			ErrFormatNotRecognized, format)
	}

	if !containsMatch(lines, match) {
		return nil, fmt.Errorf("%w: no %s timestamps found",
			ErrFormatNotRecognized, format)
	}

	switch format {
	case FormatSpeakerCompact:
		return buildSpeakerCompact(lines, opts), nil
	case FormatTimeRange:
		return buildTimeRange(lines), nil
	default:
		return buildSRT(lines), nil
	}
}

func containsMatch(lines []string, match func(string) bool) bool {
	for _, line := range lines {
		if match(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

// SplitLines splits content on any newline convention and drops a leading
// byte order mark.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}

// Parse builds a Transcript from already-read content.
func Parse(path, content string, opts Options) (*Transcript, error) {
	format, segments, err := ParseDocument(SplitLines(content), opts)
	if err != nil {
		return nil, err
	}

	return &Transcript{
		FilePath:   path,
		Format:     format,
		RawContent: content,
		Segments:   segments,
	}, nil
}

// LoadFile reads and parses a transcript file.
func LoadFile(path string, opts Options) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	t, err := Parse(path, string(data), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return t, nil
}
