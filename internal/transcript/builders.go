package transcript

import "strings"

// segment under construction
type pendingSegment struct {
	startMS int64
	endMS   int64
	speaker string
	text    []string
}

func (p *pendingSegment) empty() bool {
	return p.speaker == "" && len(p.text) == 0
}

// builds Format A: a lone compact timestamp, an optional speaker line and
// one or more text lines, ended by a blank line or the next timestamp
func buildSpeakerCompact(lines []string, opts Options) []Segment {
	duration := opts.defaultDuration()

	var segments []Segment
	var current *pendingSegment

	flush := func() {
		if current == nil {
			return
		}
		text := strings.Join(current.text, " ")
		if text != "" {
			segments = append(segments, Segment{
				StartMS: current.startMS,
				EndMS:   current.startMS + duration,
				Speaker: current.speaker,
				Text:    text,
			})
		}
		current = nil
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		if start, ok := ParseCompactTimestamp(line); ok {
			flush()
			current = &pendingSegment{startMS: start}
			continue
		}

		if current == nil {
			continue
		}

		if line == "" {
			// a blank right after the timestamp does not end the segment
			if !current.empty() {
				flush()
			}
			continue
		}

		if current.empty() && looksLikeSpeaker(line) &&
			followedByProse(lines, i) {
			current.speaker = line
			continue
		}

		current.text = append(current.text, line)
	}
	flush()

	return chainEndTimes(segments)
}

// reports whether the line after i is non-blank and not a timestamp
func followedByProse(lines []string, i int) bool {
	if i+1 >= len(lines) {
		return false
	}
	next := strings.TrimSpace(lines[i+1])
	return next != "" && !isCompactTimestamp(next)
}

// every segment but the last ends where the next one starts
func chainEndTimes(segments []Segment) []Segment {
	if len(segments) == 0 {
		return nil
	}

	chained := make([]Segment, len(segments))
	for i, seg := range segments {
		if i+1 < len(segments) {
			chained[i] = seg.WithEnd(segments[i+1].StartMS)
		} else {
			chained[i] = seg
		}
	}
	return chained
}

// builds Format B: each range line carries both times; text is the rest of
// the line plus following non-range lines up to a blank
func buildTimeRange(lines []string) []Segment {
	var segments []Segment
	var current *pendingSegment

	flush := func() {
		if current == nil {
			return
		}
		if seg, ok := finishSegment(current); ok {
			segments = append(segments, seg)
		}
		current = nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if start, end, rest, ok := parseTimeRange(line); ok {
			flush()
			current = &pendingSegment{startMS: start, endMS: end}
			if rest = strings.TrimLeft(rest, " \t:|"); rest != "" {
				current.text = append(current.text, strings.TrimSpace(rest))
			}
			continue
		}

		if current == nil {
			continue
		}

		if line == "" {
			if len(current.text) > 0 {
				flush()
			}
			continue
		}

		current.text = append(current.text, line)
	}
	flush()

	return segments
}

// builds Format C: [sequence] timing line, text lines, blank separator
func buildSRT(lines []string) []Segment {
	var segments []Segment

	n := len(lines)
	for i := 0; i < n; {
		line := strings.TrimSpace(lines[i])
		if i == 0 {
			line = strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
		}

		start, end, ok := ParseSRTTiming(line)
		if !ok {
			// sequence tags and stray lines
			i++
			continue
		}
		i++

		block := &pendingSegment{startMS: start, endMS: end}
		for i < n && !endsSRTBlock(lines, i) {
			block.text = append(block.text, strings.TrimSpace(lines[i]))
			i++
		}

		if seg, ok := finishSegment(block); ok {
			segments = append(segments, seg)
		}
	}

	return segments
}

// a block ends at a blank line, or at the next block when the separator
// is missing
func endsSRTBlock(lines []string, i int) bool {
	line := strings.TrimSpace(lines[i])
	if line == "" || isSRTTiming(line) {
		return true
	}
	return isSequenceNumber(line) && i+1 < len(lines) &&
		isSRTTiming(lines[i+1])
}

// joins text, splits off a "Name:" prefix and drops empty results
func finishSegment(p *pendingSegment) (Segment, bool) {
	speaker, text := splitSpeaker(strings.Join(p.text, " "))
	if text == "" {
		return Segment{}, false
	}
	return Segment{
		StartMS: p.startMS,
		EndMS:   p.endMS,
		Speaker: speaker,
		Text:    text,
	}, true
}
