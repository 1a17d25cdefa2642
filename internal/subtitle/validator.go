package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mgpai22/podmeta/internal/transcript"
)

var (
	srtTimingRegex = regexp.MustCompile(
		`^(\d{2,}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2,}):(\d{2}):(\d{2}),(\d{3})$`,
	)
	// same shape with either separator; matches here but not above means
	// a '.' was used for milliseconds
	looseTimingRegex = regexp.MustCompile(
		`^(\d{2,}):(\d{2}):(\d{2})[.,](\d{3})\s*-->\s*(\d{2,}):(\d{2}):(\d{2})[.,](\d{3})$`,
	)
)

// ValidateSRT checks SubRip text and returns every violation found, in
// document order. An empty result means the text is valid. It never stops
// at the first problem.
func ValidateSRT(text string) []string {
	lines := strings.Split(
		strings.ReplaceAll(strings.TrimPrefix(text, "\ufeff"), "\r\n", "\n"),
		"\n",
	)

	var violations []string
	report := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	expected := 1
	var previousEnd int64
	havePrevious := false

	n := len(lines)
	i := 0
	for i < n {
		// blank runs between blocks
		for i < n && strings.TrimSpace(lines[i]) == "" {
			i++
		}
		if i >= n {
			break
		}

		seqLine := strings.TrimSpace(lines[i])
		seq := expected
		if num, err := strconv.Atoi(seqLine); err == nil {
			if num != expected {
				report("Line %d: expected sequence number %d, got %d",
					i+1, expected, num)
			}
			seq = num
			i++
		} else if looseTimingRegex.MatchString(seqLine) {
			report("Line %d: missing sequence number (expected %d)",
				i+1, expected)
		} else {
			report("Line %d: expected sequence number %d, got %q",
				i+1, expected, seqLine)
			// skip the rest of the unreadable block
			for i < n && strings.TrimSpace(lines[i]) != "" {
				i++
			}
			expected++
			continue
		}
		expected = seq + 1

		if i >= n || strings.TrimSpace(lines[i]) == "" {
			report("Entry %d: missing timestamp line", seq)
			continue
		}

		timing := strings.TrimSpace(lines[i])
		start, end, ok := parseTiming(srtTimingRegex, timing)
		if !ok {
			if start, end, ok = parseTiming(looseTimingRegex, timing); ok {
				report("Line %d: milliseconds must be separated by ',' not '.' (%q)",
					i+1, timing)
			} else {
				report("Line %d: invalid timestamp format %q, expected HH:MM:SS,mmm --> HH:MM:SS,mmm",
					i+1, timing)
			}
		}
		i++

		if ok {
			if end <= start {
				report("Entry %d: end time %s is not after start time %s",
					seq, transcript.FormatSRTTimestamp(end), transcript.FormatSRTTimestamp(start))
			}
			if havePrevious && start < previousEnd {
				report("Entry %d: overlaps previous entry (starts %s, previous ends %s)",
					seq, transcript.FormatSRTTimestamp(start), transcript.FormatSRTTimestamp(previousEnd))
			}
			previousEnd = end
			havePrevious = true
		}

		textCount := 0
		for i < n && strings.TrimSpace(lines[i]) != "" {
			textCount++
			i++
		}
		if textCount == 0 {
			report("Entry %d: missing subtitle text", seq)
		}
	}

	return violations
}

func parseTiming(re *regexp.Regexp, line string) (start, end int64, ok bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}

	fields := make([]int64, 8)
	for j := range fields {
		v, err := strconv.ParseInt(m[j+1], 10, 64)
		if err != nil {
			return 0, 0, false
		}
		fields[j] = v
	}

	start = fields[0]*3600000 + fields[1]*60000 + fields[2]*1000 + fields[3]
	end = fields[4]*3600000 + fields[5]*60000 + fields[6]*1000 + fields[7]
	return start, end, true
}
