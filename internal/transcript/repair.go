package transcript

import (
	"fmt"
	"sort"
	"strings"
)

// WarningPrefix marks a recoverable repair message.
const WarningPrefix = "Warning:"

// length given to a segment whose end does not come after its start
const repairDurationMS int64 = 5000

// Repair returns a copy of segments that is sorted by start time, free of
// overlaps and of non-positive durations, plus one message per correction.
// Segments with blank text are dropped. A repaired sequence repairs to
// itself with no messages.
func Repair(segments []Segment) ([]Segment, []string) {
	var warnings []string

	repaired := make([]Segment, 0, len(segments))
	dropped := 0
	for _, seg := range segments {
		if strings.TrimSpace(seg.Text) == "" {
			dropped++
			continue
		}
		repaired = append(repaired, seg)
	}
	if dropped > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%s Dropped %d segment(s) with empty text",
			WarningPrefix,
			dropped,
		))
	}

	idx := make([]int, len(repaired))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return repaired[idx[a]].StartMS < repaired[idx[b]].StartMS
	})

	moved := false
	sorted := make([]Segment, len(repaired))
	for pos, from := range idx {
		if from != pos {
			moved = true
		}
		sorted[pos] = repaired[from]
	}
	if moved {
		warnings = append(warnings, WarningPrefix+
			" Segments were out of order and have been sorted by start time")
	}

	var previousEnd int64
	for i, seg := range sorted {
		number := i + 1

		if seg.StartMS < previousEnd {
			warnings = append(warnings, fmt.Sprintf(
				"%s Segment %d overlaps previous segment (starts %s, previous ends %s); start moved to %s",
				WarningPrefix,
				number,
				FormatSRTTimestamp(seg.StartMS),
				FormatSRTTimestamp(previousEnd),
				FormatSRTTimestamp(previousEnd),
			))
			seg = seg.WithStart(previousEnd)
		}

		if seg.EndMS <= seg.StartMS {
			warnings = append(warnings, fmt.Sprintf(
				"%s Segment %d has invalid duration (start %s, end %s); end set to %s",
				WarningPrefix,
				number,
				FormatSRTTimestamp(seg.StartMS),
				FormatSRTTimestamp(seg.EndMS),
				FormatSRTTimestamp(seg.StartMS+repairDurationMS),
			))
			seg = seg.WithEnd(seg.StartMS + repairDurationMS)
		}

		sorted[i] = seg
		previousEnd = seg.EndMS
	}

	return sorted, warnings
}

// IsWarning reports whether msg is a recoverable repair message.
func IsWarning(msg string) bool {
	return strings.HasPrefix(msg, WarningPrefix)
}
