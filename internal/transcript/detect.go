package transcript

// number of leading lines DetectFormat looks at
const detectWindow = 50

// patterns in precedence order; the more structurally specific formats
// come first because the looser ones also match parts of them
var detectors = []struct {
	format Format
	match  func(string) bool
}{
	{FormatSRT, isSRTTiming},
	{FormatSpeakerCompact, isCompactTimestamp},
	{FormatTimeRange, isTimeRange},
}

// DetectFormat classifies a document from its first 50 lines. Each pattern
// is tried against the whole window before the next one; a document with no
// recognizable timestamp is plain text.
func DetectFormat(lines []string) Format {
	window := lines
	if len(window) > detectWindow {
		window = window[:detectWindow]
	}

	for _, d := range detectors {
		for _, line := range window {
			if d.match(line) {
				return d.format
			}
		}
	}
	return FormatPlainText
}
