package transcript

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxSpeakerRunes = 30
	maxSpeakerWords = 4
	// a "name:" prefix is only considered when the colon is this close
	// to the start of the text
	speakerColonWindow = 30
)

// reports whether s reads like a display name: short, capitalized and
// free of punctuation
func looksLikeSpeaker(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > maxSpeakerRunes {
		return false
	}
	if len(strings.Fields(s)) > maxSpeakerWords {
		return false
	}

	first, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsUpper(first) {
		return false
	}

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) ||
			unicode.IsMark(r) || r == ' ' {
			continue
		}
		return false
	}
	return true
}

// splits a leading "Name:" off text when the name passes looksLikeSpeaker
func splitSpeaker(text string) (speaker, rest string) {
	text = strings.TrimSpace(text)
	idx := strings.Index(text, ":")
	if idx <= 0 || utf8.RuneCountInString(text[:idx]) >= speakerColonWindow {
		return "", text
	}

	name := strings.TrimSpace(text[:idx])
	if !looksLikeSpeaker(name) {
		return "", text
	}
	return name, strings.TrimSpace(text[idx+1:])
}
