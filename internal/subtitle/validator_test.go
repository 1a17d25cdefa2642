package subtitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSRTValid(t *testing.T) {
	content := "\ufeff1\r\n" +
		"00:00:01,000 --> 00:00:04,000\r\n" +
		"Hello, world!\r\n" +
		"\r\n" +
		"\r\n" +
		"\r\n" +
		"2\r\n" +
		"00:00:04,000 --> 00:00:08,200\r\n" +
		"This is a test.\r\n" +
		"With multiple lines.\r\n"

	assert.Empty(t, ValidateSRT(content))
}

func TestValidateSRTDotMilliseconds(t *testing.T) {
	content := "1\n00:00:00.000 --> 00:00:05.000\nHello there.\n"

	violations := ValidateSRT(content)

	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "Line 2")
	assert.Contains(t, violations[0], "',' not '.'")
}

func TestValidateSRTViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name: "sequence gap resynchronises",
			content: "1\n00:00:01,000 --> 00:00:02,000\na\n\n" +
				"3\n00:00:02,000 --> 00:00:03,000\nb\n\n" +
				"4\n00:00:03,000 --> 00:00:04,000\nc\n",
			want: []string{"Line 5: expected sequence number 2, got 3"},
		},
		{
			name:    "end before start",
			content: "1\n00:00:05,000 --> 00:00:01,000\na\n",
			want:    []string{"Entry 1: end time 00:00:01,000 is not after start time 00:00:05,000"},
		},
		{
			name: "overlap",
			content: "1\n00:00:01,000 --> 00:00:05,000\na\n\n" +
				"2\n00:00:04,000 --> 00:00:06,000\nb\n",
			want: []string{"Entry 2: overlaps previous entry (starts 00:00:04,000, previous ends 00:00:05,000)"},
		},
		{
			name:    "missing text",
			content: "1\n00:00:01,000 --> 00:00:02,000\n\n2\n00:00:02,000 --> 00:00:03,000\nb\n",
			want:    []string{"Entry 1: missing subtitle text"},
		},
		{
			name:    "malformed timestamp",
			content: "1\n00:00:01 --> 00:00:02\na\n",
			want: []string{
				`Line 2: invalid timestamp format "00:00:01 --> 00:00:02", expected HH:MM:SS,mmm --> HH:MM:SS,mmm`,
			},
		},
		{
			name:    "missing sequence number",
			content: "00:00:01,000 --> 00:00:02,000\na\n",
			want:    []string{"Line 1: missing sequence number (expected 1)"},
		},
		{
			name:    "missing timestamp at end",
			content: "1\n00:00:01,000 --> 00:00:02,000\na\n\n2\n",
			want:    []string{"Entry 2: missing timestamp line"},
		},
		{
			name:    "unreadable block",
			content: "hello\nworld\n\n2\n00:00:01,000 --> 00:00:02,000\na\n",
			want:    []string{`Line 1: expected sequence number 1, got "hello"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSRT(tt.content))
		})
	}
}

func TestValidateSRTCollectsEverything(t *testing.T) {
	content := "2\n00:00:05.000 --> 00:00:01,000\n\n" +
		"7\n00:00:00,500 --> 00:00:00,400\nx\n"

	violations := ValidateSRT(content)

	assert.Equal(t, []string{
		"Line 1: expected sequence number 1, got 2",
		`Line 2: milliseconds must be separated by ',' not '.' ("00:00:05.000 --> 00:00:01,000")`,
		"Entry 2: end time 00:00:01,000 is not after start time 00:00:05,000",
		"Entry 2: missing subtitle text",
		"Line 4: expected sequence number 3, got 7",
		"Entry 7: end time 00:00:00,400 is not after start time 00:00:00,500",
		"Entry 7: overlaps previous entry (starts 00:00:00,500, previous ends 00:00:01,000)",
	}, violations)
}

func TestValidateSRTEmpty(t *testing.T) {
	assert.Empty(t, ValidateSRT(""))
	assert.Empty(t, ValidateSRT("\n\n\n"))
}
