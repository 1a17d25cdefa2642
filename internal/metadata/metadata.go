package metadata

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mgpai22/podmeta/internal/transcript"
)

// piece of metadata requested from the assistant
type Kind string

const (
	KindTitles      Kind = "titles"
	KindDescription Kind = "description"
	KindChapters    Kind = "chapters"
)

// AllKinds lists every kind in generation order.
var AllKinds = []Kind{KindTitles, KindDescription, KindChapters}

// ParseKind maps a user supplied name to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindTitles, KindDescription, KindChapters:
		return k, nil
	default:
		return "", fmt.Errorf("unknown metadata kind: %q", s)
	}
}

// DefaultMaxTranscriptChars bounds the transcript text embedded in a prompt.
const DefaultMaxTranscriptChars = 120000

const defaultTitleCount = 5

// chapter marker as published in a video description
type Chapter struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Title     string `json:"title" yaml:"title"`
}

// FormatYouTubeChapters renders chapters as "<timestamp> <title>" lines.
// Timestamps are emitted as given.
func FormatYouTubeChapters(chapters []Chapter) string {
	var sb strings.Builder
	for _, ch := range chapters {
		sb.WriteString(ch.Timestamp)
		sb.WriteString(" ")
		sb.WriteString(ch.Title)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n \t")
}

// input for BuildPrompt
type Request struct {
	Transcript         *transcript.Transcript
	Instructions       string
	TitleCount         int
	MaxTranscriptChars int
}

func (r Request) maxChars() int {
	if r.MaxTranscriptChars > 0 {
		return r.MaxTranscriptChars
	}
	return DefaultMaxTranscriptChars
}

func (r Request) titleCount() int {
	if r.TitleCount > 0 {
		return r.TitleCount
	}
	return defaultTitleCount
}

// BuildPrompt creates the assistant prompt for one metadata kind
func BuildPrompt(kind Kind, req Request) string {
	var sb strings.Builder

	switch kind {
	case KindTitles:
		sb.WriteString(fmt.Sprintf(
			"Suggest %d episode titles for the podcast transcript below.\n\n",
			req.titleCount(),
		))
		sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
		sb.WriteString("1. Each title must be under 100 characters.\n")
		sb.WriteString("2. Base every title on what is actually discussed.\n")
		sb.WriteString(
			"3. Return ONLY a JSON object of the form {\"titles\": [\"...\"]}.\n",
		)
	case KindDescription:
		sb.WriteString(
			"Write an episode description for the podcast transcript below.\n\n",
		)
		sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
		sb.WriteString("1. Open with a one or two sentence summary.\n")
		sb.WriteString("2. Follow with the main topics as short paragraphs.\n")
		sb.WriteString(
			"3. Return ONLY a JSON object of the form {\"description\": \"...\"}.\n",
		)
	case KindChapters:
		sb.WriteString(
			"Create YouTube chapter markers for the timestamped podcast transcript below.\n\n",
		)
		sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
		sb.WriteString("1. The first chapter must start at 00:00.\n")
		sb.WriteString(
			"2. Use MM:SS timestamps, or H:MM:SS past the first hour, taken from the transcript.\n",
		)
		sb.WriteString("3. Keep chapter titles short and descriptive.\n")
		sb.WriteString(
			"4. Return ONLY a JSON object of the form {\"chapters\": [{\"timestamp\": \"00:00\", \"title\": \"...\"}]}.\n",
		)
	}
	sb.WriteString("Do not add any explanation or markdown formatting.\n\n")

	if req.Instructions != "" {
		sb.WriteString(
			fmt.Sprintf("Additional instructions: %s\n\n", req.Instructions),
		)
	}

	sb.WriteString("Transcript:\n")
	sb.WriteString(truncateString(transcriptText(kind, req.Transcript), req.maxChars()))
	sb.WriteString("\n\nOutput the JSON object only:")

	return sb.String()
}

func transcriptText(kind Kind, tr *transcript.Transcript) string {
	if tr == nil {
		return ""
	}
	if kind == KindChapters {
		return tr.TimestampedText()
	}
	return tr.PlainText()
}

// cuts s to at most maxLen bytes without splitting a rune
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
