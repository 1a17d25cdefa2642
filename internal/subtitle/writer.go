package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/podmeta/internal/transcript"
)

func errUnsupportedFormat(format Format) error {
	return fmt.Errorf("unsupported format: %s", format)
}

// ConvertToSRT repairs segments and encodes them as SubRip text.
func ConvertToSRT(segments []transcript.Segment) ConversionResult {
	return Convert(SRTEncoder{}, segments)
}

// Convert repairs segments and encodes them with enc.
func Convert(enc Encoder, segments []transcript.Segment) ConversionResult {
	repaired, warnings := transcript.Repair(segments)

	valid := true
	for _, msg := range warnings {
		if !transcript.IsWarning(msg) {
			valid = false
			break
		}
	}

	return ConversionResult{
		Content: enc.Encode(repaired),
		Errors:  warnings,
		IsValid: valid,
	}
}

// Encode renders segments as SubRip text. Input is expected to be repaired.
func (SRTEncoder) Encode(segments []transcript.Segment) string {
	var sb strings.Builder
	for i, seg := range segments {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			transcript.FormatSRTTimestamp(seg.StartMS),
			transcript.FormatSRTTimestamp(seg.EndMS)))

		for _, line := range textLines(seg) {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), " \t\r\n") + "\n"
}

// Encode renders segments as WebVTT text. Input is expected to be repaired.
func (VTTEncoder) Encode(segments []transcript.Segment) string {
	var sb strings.Builder

	// VTT header
	sb.WriteString("WEBVTT\n\n")

	for i, seg := range segments {
		// optional cue identifier
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00.000 --> 00:00:00.000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatVTTTime(seg.StartMS),
			formatVTTTime(seg.EndMS)))

		for _, line := range textLines(seg) {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), " \t\r\n") + "\n"
}

// non-blank trimmed text lines, the first prefixed with "speaker: "
func textLines(seg transcript.Segment) []string {
	var lines []string
	for _, line := range strings.Split(seg.Text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if seg.Speaker != "" && len(lines) > 0 {
		lines[0] = seg.Speaker + ": " + lines[0]
	}
	return lines
}

func formatVTTTime(ms int64) string {
	return strings.Replace(transcript.FormatSRTTimestamp(ms), ",", ".", 1)
}

// writes content to path, creating parent directories
func WriteFile(path, content string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// subtitle format based on file extension
func GetFormatFromExtension(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".vtt":
		return FormatVTT
	default:
		return FormatSRT
	}
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatVTT:
		return ".vtt"
	default:
		return ".srt"
	}
}
