package metadata

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	jsonBlockRegex = regexp.MustCompile("```(?:json)?\\s*")

	// "1. Title", "2) Title", "- Title"
	listItemRegex = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s+`)

	// "00:00 Intro", "[01:02:03] - Wrap up", "- 12:30: Questions"
	chapterLineRegex = regexp.MustCompile(
		`^\s*(?:[-*•]\s*)?\[?((?:\d{1,2}:)?\d{1,2}:\d{2})\]?\s*(?:[-–—:|]\s*)?(.+?)\s*$`,
	)

	chapterTimestampRegex = regexp.MustCompile(`^(?:(\d{1,2}):)?(\d{1,2}):(\d{2})$`)
)

// ParseTitles extracts suggested titles from an assistant reply.
func ParseTitles(response string) ([]string, error) {
	text := cleanJSONResponse(response)

	var titles []string
	found := findJSON(text, func(raw json.RawMessage) bool {
		var wrapper struct {
			Titles []string `json:"titles"`
		}
		if err := json.Unmarshal(raw, &wrapper); err == nil &&
			len(wrapper.Titles) > 0 {
			titles = wrapper.Titles
			return true
		}
		var bare []string
		if err := json.Unmarshal(raw, &bare); err == nil && len(bare) > 0 {
			titles = bare
			return true
		}
		return false
	})

	if !found {
		for _, line := range strings.Split(text, "\n") {
			// "Here are some titles:"
			if strings.HasSuffix(strings.TrimSpace(line), ":") {
				continue
			}
			titles = append(titles, listItemRegex.ReplaceAllString(line, ""))
		}
	}

	titles = cleanTitles(titles)
	if len(titles) == 0 {
		return nil, fmt.Errorf(
			"no titles found in response: %s",
			truncateString(response, 200),
		)
	}
	return titles, nil
}

func cleanTitles(titles []string) []string {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		t = strings.TrimSpace(t)
		t = strings.Trim(t, `"'`)
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseDescription extracts the episode description from an assistant reply.
// Replies that are not JSON are used verbatim.
func ParseDescription(response string) (string, error) {
	text := cleanJSONResponse(response)

	description := ""
	found := findJSON(text, func(raw json.RawMessage) bool {
		var wrapper struct {
			Description *string `json:"description"`
		}
		if err := json.Unmarshal(raw, &wrapper); err == nil &&
			wrapper.Description != nil {
			description = *wrapper.Description
			return true
		}
		return false
	})
	if !found {
		description = text
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return "", fmt.Errorf("empty description in response")
	}
	return description, nil
}

// ParseChapters extracts chapter markers from an assistant reply. Entries
// whose timestamp is malformed are dropped and the rest are sorted by time.
func ParseChapters(response string) ([]Chapter, error) {
	text := cleanJSONResponse(response)

	var chapters []Chapter
	found := findJSON(text, func(raw json.RawMessage) bool {
		var wrapper struct {
			Chapters []Chapter `json:"chapters"`
		}
		if err := json.Unmarshal(raw, &wrapper); err == nil &&
			len(wrapper.Chapters) > 0 {
			chapters = wrapper.Chapters
			return true
		}
		var bare []Chapter
		if err := json.Unmarshal(raw, &bare); err == nil && len(bare) > 0 &&
			bare[0].Timestamp != "" {
			chapters = bare
			return true
		}
		return false
	})

	if !found {
		for _, line := range strings.Split(text, "\n") {
			m := chapterLineRegex.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			chapters = append(chapters, Chapter{Timestamp: m[1], Title: m[2]})
		}
	}

	type timed struct {
		chapter Chapter
		seconds int
	}
	valid := make([]timed, 0, len(chapters))
	for _, ch := range chapters {
		ch.Timestamp = strings.TrimSpace(ch.Timestamp)
		ch.Title = strings.TrimSpace(ch.Title)
		seconds, ok := chapterSeconds(ch.Timestamp)
		if !ok || ch.Title == "" {
			continue
		}
		valid = append(valid, timed{chapter: ch, seconds: seconds})
	}

	if len(valid) == 0 {
		return nil, fmt.Errorf(
			"no valid chapters found in response: %s",
			truncateString(response, 200),
		)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].seconds < valid[j].seconds
	})

	result := make([]Chapter, len(valid))
	for i, v := range valid {
		result[i] = v.chapter
	}
	return result, nil
}

// chapterSeconds decodes MM:SS or H:MM:SS.
func chapterSeconds(ts string) (int, bool) {
	m := chapterTimestampRegex.FindStringSubmatch(ts)
	if m == nil {
		return 0, false
	}

	hours := 0
	if m[1] != "" {
		hours, _ = strconv.Atoi(m[1])
	}
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])

	if seconds >= 60 || (m[1] != "" && minutes >= 60) {
		return 0, false
	}
	return hours*3600 + minutes*60 + seconds, true
}

func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)
	s = jsonBlockRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// findJSON walks every '[' or '{' in text, decodes the JSON value starting
// there and hands it to try until try accepts one.
func findJSON(text string, try func(json.RawMessage) bool) bool {
	text = fixInvalidEscapes(text)

	for i := 0; i < len(text); i++ {
		if text[i] != '[' && text[i] != '{' {
			continue
		}
		decoder := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			continue
		}
		if try(raw) {
			return true
		}
	}
	return false
}

// fixes invalid JSON escape sequences such as \N by escaping the backslash
func fixInvalidEscapes(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	i := 0
	for i < len(s) {
		if i < len(s)-1 && s[i] == '\\' {
			next := s[i+1]
			switch next {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
				result.WriteByte(s[i])
				result.WriteByte(next)
			default:
				result.WriteString("\\\\")
				result.WriteByte(next)
			}
			i += 2
		} else {
			result.WriteByte(s[i])
			i++
		}
	}

	return result.String()
}
