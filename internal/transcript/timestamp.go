package transcript

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	// M:SS.cc, MM:SS.cc or H:MM:SS.cc alone on a line
	compactTimestampRegex = regexp.MustCompile(
		`^\s*(?:(\d{1,2}):)?(\d{1,2}):(\d{2})\.(\d{2})\s*$`,
	)

	// two H:MM:SS stamps at line start, optionally bracketed, joined by
	// an arrow, a dash, "~", "to" or plain whitespace
	timeRangeRegex = regexp.MustCompile(
		`^\s*[\[(]?(\d{1,2}):(\d{2}):(\d{2})[\])]?` +
			`(?:\s*(?:-->|->|-|–|—|~|to)\s*|\s+)` +
			`[\[(]?(\d{1,2}):(\d{2}):(\d{2})[\])]?`,
	)

	// exact SubRip timing line
	srtTimingRegex = regexp.MustCompile(
		`^\s*(\d{2,}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2,}):(\d{2}):(\d{2}),(\d{3})\s*$`,
	)

	sequenceRegex = regexp.MustCompile(`^\s*\d+\s*$`)
)

// ParseCompactTimestamp decodes a lone compact timestamp line.
func ParseCompactTimestamp(line string) (int64, bool) {
	m := compactTimestampRegex.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	hours := "0"
	if m[1] != "" {
		hours = m[1]
	}
	ms, err := clockToMS(hours, m[2], m[3])
	if err != nil {
		return 0, false
	}
	centis, err := strconv.ParseInt(m[4], 10, 64)
	if err != nil {
		return 0, false
	}
	return ms + centis*10, true
}

// ParseSRTTiming decodes an exact "HH:MM:SS,mmm --> HH:MM:SS,mmm" line.
func ParseSRTTiming(line string) (start, end int64, ok bool) {
	m := srtTimingRegex.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	start, err := srtFieldsToMS(m[1], m[2], m[3], m[4])
	if err != nil {
		return 0, 0, false
	}
	end, err = srtFieldsToMS(m[5], m[6], m[7], m[8])
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// matches a clock range at the start of line; rest is the text after it
func parseTimeRange(line string) (start, end int64, rest string, ok bool) {
	loc := timeRangeRegex.FindStringSubmatchIndex(line)
	if loc == nil {
		return 0, 0, "", false
	}
	group := func(i int) string {
		return line[loc[2*i]:loc[2*i+1]]
	}
	start, err := clockToMS(group(1), group(2), group(3))
	if err != nil {
		return 0, 0, "", false
	}
	end, err = clockToMS(group(4), group(5), group(6))
	if err != nil {
		return 0, 0, "", false
	}
	return start, end, line[loc[1]:], true
}

func isCompactTimestamp(line string) bool {
	return compactTimestampRegex.MatchString(line)
}

func isTimeRange(line string) bool {
	return timeRangeRegex.MatchString(line)
}

func isSRTTiming(line string) bool {
	return srtTimingRegex.MatchString(line)
}

func isSequenceNumber(line string) bool {
	return sequenceRegex.MatchString(line)
}

func clockToMS(hours, minutes, seconds string) (int64, error) {
	h, err := strconv.ParseInt(hours, 10, 64)
	if err != nil {
		return 0, err
	}
	m, err := strconv.ParseInt(minutes, 10, 64)
	if err != nil {
		return 0, err
	}
	s, err := strconv.ParseInt(seconds, 10, 64)
	if err != nil {
		return 0, err
	}
	return h*3600000 + m*60000 + s*1000, nil
}

func srtFieldsToMS(hours, minutes, seconds, millis string) (int64, error) {
	ms, err := clockToMS(hours, minutes, seconds)
	if err != nil {
		return 0, err
	}
	frac, err := strconv.ParseInt(millis, 10, 64)
	if err != nil {
		return 0, err
	}
	return ms + frac, nil
}

// FormatSRTTimestamp renders ms as HH:MM:SS,mmm. Negative values clamp to 0.
func FormatSRTTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3600000
	minutes := (ms / 60000) % 60
	seconds := (ms / 1000) % 60
	millis := ms % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// FormatClock renders ms as MM:SS, or H:MM:SS from one hour on.
func FormatClock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	hours := total / 3600
	minutes := (total / 60) % 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
