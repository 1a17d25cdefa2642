package transcript

import (
	"errors"
	"strings"
)

// ErrFormatNotRecognized is returned when a document contains no line
// matching the timestamp grammar it was parsed as.
var ErrFormatNotRecognized = errors.New("transcript format not recognized")

// DefaultSegmentDurationMS is the provisional length given to a segment
// whose end is not known from the document itself.
const DefaultSegmentDurationMS int64 = 5000

// layout of a transcript document
type Format int

const (
	FormatPlainText Format = iota
	// lone compact timestamp line, optional speaker line, text lines
	FormatSpeakerCompact
	// "HH:MM:SS - HH:MM:SS" ranges followed by text
	FormatTimeRange
	// SubRip blocks
	FormatSRT
)

func (f Format) String() string {
	switch f {
	case FormatPlainText:
		return "plain"
	case FormatSpeakerCompact:
		return "speaker-compact"
	case FormatTimeRange:
		return "time-range"
	case FormatSRT:
		return "srt"
	default:
		return "unknown"
	}
}

// represents one timestamped unit of speech
type Segment struct {
	StartMS int64  `json:"start_ms"`
	EndMS   int64  `json:"end_ms"`
	Speaker string `json:"speaker,omitempty"`
	Text    string `json:"text"`
}

// DurationMS returns EndMS - StartMS.
func (s Segment) DurationMS() int64 {
	return s.EndMS - s.StartMS
}

// WithEnd returns a copy of s ending at endMS.
func (s Segment) WithEnd(endMS int64) Segment {
	s.EndMS = endMS
	return s
}

// WithStart returns a copy of s starting at startMS.
func (s Segment) WithStart(startMS int64) Segment {
	s.StartMS = startMS
	return s
}

// parsed transcript plus its provenance
type Transcript struct {
	FilePath   string
	Format     Format
	RawContent string
	Segments   []Segment
}

// Options tunes the segment builders.
type Options struct {
	DefaultSegmentDurationMS int64
}

func DefaultOptions() Options {
	return Options{DefaultSegmentDurationMS: DefaultSegmentDurationMS}
}

func (o Options) defaultDuration() int64 {
	if o.DefaultSegmentDurationMS > 0 {
		return o.DefaultSegmentDurationMS
	}
	return DefaultSegmentDurationMS
}

// DurationMS is the end time of the last segment, or 0 without segments.
func (t *Transcript) DurationMS() int64 {
	if len(t.Segments) == 0 {
		return 0
	}
	return t.Segments[len(t.Segments)-1].EndMS
}

func (t *Transcript) HasTimestamps() bool {
	return len(t.Segments) > 0
}

// PlainText joins segment texts with a space. Without segments the raw
// content is returned.
func (t *Transcript) PlainText() string {
	if len(t.Segments) == 0 {
		return strings.TrimSpace(t.RawContent)
	}

	texts := make([]string, len(t.Segments))
	for i, seg := range t.Segments {
		texts[i] = seg.Text
	}
	return strings.Join(texts, " ")
}

// TimestampedText renders one "[MM:SS] Speaker: text" line per segment.
// Without segments the raw content is returned.
func (t *Transcript) TimestampedText() string {
	if len(t.Segments) == 0 {
		return strings.TrimSpace(t.RawContent)
	}

	var sb strings.Builder
	for i, seg := range t.Segments {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("[")
		sb.WriteString(FormatClock(seg.StartMS))
		sb.WriteString("] ")
		if seg.Speaker != "" {
			sb.WriteString(seg.Speaker)
			sb.WriteString(": ")
		}
		sb.WriteString(seg.Text)
	}
	return sb.String()
}
