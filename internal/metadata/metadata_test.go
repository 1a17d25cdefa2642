package metadata

import (
	"strings"
	"testing"

	"github.com/mgpai22/podmeta/internal/transcript"
)

func TestFormatYouTubeChapters(t *testing.T) {
	tests := []struct {
		name     string
		chapters []Chapter
		want     string
	}{
		{"empty", nil, ""},
		{
			"two chapters",
			[]Chapter{{"00:00", "Intro"}, {"05:30", "Main topic"}},
			"00:00 Intro\n05:30 Main topic",
		},
		{
			"no validation",
			[]Chapter{{"soon", "Whatever"}, {"1:02:03", "Late"}},
			"soon Whatever\n1:02:03 Late",
		},
		{
			"trailing blank entry trimmed",
			[]Chapter{{"00:00", "Intro"}, {"", ""}},
			"00:00 Intro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatYouTubeChapters(tt.chapters); got != tt.want {
				t.Errorf("FormatYouTubeChapters() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range AllKinds {
		got, err := ParseKind(" " + strings.ToUpper(string(k)) + " ")
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseKind("thumbnail"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestBuildPrompt(t *testing.T) {
	tr, err := transcript.Parse(
		"episode.txt",
		"00:00:00 - 00:00:05 Host: Welcome to the show.\n00:01:05 - 00:01:09 Guest: Thanks.\n",
		transcript.DefaultOptions(),
	)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	titles := BuildPrompt(KindTitles, Request{Transcript: tr, TitleCount: 3})
	if !strings.Contains(titles, "Suggest 3 episode titles") {
		t.Error("titles prompt should carry the requested count")
	}
	if !strings.Contains(titles, "Welcome to the show. Thanks.") {
		t.Error("titles prompt should embed the plain transcript")
	}

	chapters := BuildPrompt(KindChapters, Request{
		Transcript:   tr,
		Instructions: "Use at most four chapters.",
	})
	if !strings.Contains(chapters, "[01:05] Guest: Thanks.") {
		t.Error("chapters prompt should embed the timestamped transcript")
	}
	if !strings.Contains(chapters, "Additional instructions: Use at most four chapters.") {
		t.Error("chapters prompt should include additional instructions")
	}

	description := BuildPrompt(KindDescription, Request{
		Transcript:         tr,
		MaxTranscriptChars: 10,
	})
	if !strings.Contains(description, "Transcript:\nWelcome to...\n") {
		t.Errorf("description prompt should truncate the transcript:\n%s", description)
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 10); got != "short" {
		t.Errorf("truncateString() = %q", got)
	}
	if got := truncateString("héllo", 2); got != "h..." {
		t.Errorf("truncateString() must not split a rune, got %q", got)
	}
}
