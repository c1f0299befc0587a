package seo

import (
	"strings"
	"unicode/utf8"

	"github.com/joestump/pagegen/internal/placeholder"
)

const (
	// MaxDescriptionLen is the longest meta description produced, in characters.
	MaxDescriptionLen = 160
	sentenceWindow    = 157
	ellipsis          = "..."
)

// Description derives a meta description from a document body: markup is
// stripped, the placeholder set applied and the result truncated.
func Description(body string, set placeholder.Set) string {
	return Truncate(placeholder.Apply(StripTags(body), set))
}

// Truncate shortens text to at most MaxDescriptionLen characters. Longer
// text ends at the last '.' within the first 157 characters when there is
// one, otherwise at the last space in that window followed by an ellipsis,
// otherwise it is cut at 160 characters.
func Truncate(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= MaxDescriptionLen {
		return text
	}
	runes := []rune(text)
	window := string(runes[:sentenceWindow])
	if i := strings.LastIndexByte(window, '.'); i >= 0 {
		return window[:i+1]
	}
	if i := strings.LastIndexByte(window, ' '); i > 0 {
		return strings.TrimRight(window[:i], " ,;:") + ellipsis
	}
	return string(runes[:MaxDescriptionLen])
}
