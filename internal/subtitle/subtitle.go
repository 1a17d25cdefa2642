package subtitle

import (
	"github.com/mgpai22/podmeta/internal/transcript"
)

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// output of converting segments to subtitle text
type ConversionResult struct {
	Content string
	// repair warnings in the order they were raised
	Errors []string
	// true iff every message in Errors is warning-class
	IsValid bool
}

// interface for rendering repaired segments as subtitle text
type Encoder interface {
	Encode(segments []transcript.Segment) string
}

// SubRip format
type SRTEncoder struct{}

// WebVTT format
type VTTEncoder struct{}

func NewEncoder(format Format) (Encoder, error) {
	switch format {
	case FormatSRT:
		return SRTEncoder{}, nil
	case FormatVTT:
		return VTTEncoder{}, nil
	default:
		return nil, errUnsupportedFormat(format)
	}
}
