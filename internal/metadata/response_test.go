package metadata

import (
	"reflect"
	"testing"
)

func TestParseTitles(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "wrapper object",
			input: `{"titles": ["First Title", "Second Title"]}`,
			want:  []string{"First Title", "Second Title"},
		},
		{
			name:  "code fenced bare array",
			input: "```json\n[\"Only One\"]\n```",
			want:  []string{"Only One"},
		},
		{
			name:  "preamble before JSON",
			input: "Sure! Here you go:\n{\"titles\": [\"  Spaced  \", \"\"]}",
			want:  []string{"Spaced"},
		},
		{
			name:  "numbered list fallback",
			input: "Here are some titles:\n1. \"The Big One\"\n2) Another\n- Third",
			want:  []string{"The Big One", "Another", "Third"},
		},
		{
			name:    "empty",
			input:   "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTitles(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTitles() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTitles() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDescription(t *testing.T) {
	got, err := ParseDescription("```json\n{\"description\": \"Line one.\\n\\nLine two.\"}\n```")
	if err != nil {
		t.Fatalf("ParseDescription error: %v", err)
	}
	if got != "Line one.\n\nLine two." {
		t.Errorf("ParseDescription() = %q", got)
	}

	got, err = ParseDescription("  A plain text description.  ")
	if err != nil || got != "A plain text description." {
		t.Errorf("ParseDescription(plain) = %q, %v", got, err)
	}

	if _, err := ParseDescription(`{"description": "  "}`); err == nil {
		t.Error("expected error for blank description")
	}
}

func TestParseChapters(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Chapter
		wantErr bool
	}{
		{
			name: "wrapper object sorted by time",
			input: `{"chapters": [
				{"timestamp": "10:00", "title": "Middle"},
				{"timestamp": "00:00", "title": "Intro"},
				{"timestamp": "1:00:00", "title": "End"}
			]}`,
			want: []Chapter{
				{"00:00", "Intro"},
				{"10:00", "Middle"},
				{"1:00:00", "End"},
			},
		},
		{
			name: "malformed timestamps dropped",
			input: `[
				{"timestamp": "00:00", "title": "Intro"},
				{"timestamp": "00:75", "title": "Bad seconds"},
				{"timestamp": "1:60:00", "title": "Bad minutes"},
				{"timestamp": "later", "title": "Not a time"},
				{"timestamp": "02:00", "title": ""}
			]`,
			want: []Chapter{{"00:00", "Intro"}},
		},
		{
			name:  "line fallback",
			input: "Chapters:\n00:00 Intro\n- [05:10] - Guest story\n12:30: Questions\nthanks for listening",
			want: []Chapter{
				{"00:00", "Intro"},
				{"05:10", "Guest story"},
				{"12:30", "Questions"},
			},
		},
		{
			name:    "nothing usable",
			input:   `{"chapters": [{"timestamp": "x", "title": "y"}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChapters(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseChapters() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseChapters() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFixInvalidEscapes(t *testing.T) {
	input := `{"titles": ["Line\Nbreak", "Tab\tok"]}`
	want := `{"titles": ["Line\\Nbreak", "Tab\tok"]}`
	if got := fixInvalidEscapes(input); got != want {
		t.Errorf("fixInvalidEscapes() = %s, want %s", got, want)
	}

	titles, err := ParseTitles(input)
	if err != nil {
		t.Fatalf("ParseTitles error: %v", err)
	}
	if titles[0] != `Line\Nbreak` {
		t.Errorf("titles[0] = %q", titles[0])
	}
}
