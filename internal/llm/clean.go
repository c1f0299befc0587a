package llm

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

var (
	fenceOpenRe  = regexp.MustCompile("(?i)^```[a-z]*[ \t]*\r?\n?")
	fenceCloseRe = regexp.MustCompile("\\s*```\\s*$")
	doctypeRe    = regexp.MustCompile(`(?i)<!doctype[^>]*>`)
	headRe       = regexp.MustCompile(`(?is)<head\b[^>]*>.*?</head\s*>`)
	wrapperRe    = regexp.MustCompile(`(?i)</?(?:html|body)\b[^>]*>`)
	blankLinesRe = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
	anyTagRe     = regexp.MustCompile(`<[a-zA-Z!/][^>]*>`)
)

// Clean normalizes raw model output into an HTML fragment. Code fences,
// document wrappers and excess blank lines are removed. Text without markup
// is left as it is.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = fenceOpenRe.ReplaceAllString(s, "")
	s = fenceCloseRe.ReplaceAllString(s, "")
	s = doctypeRe.ReplaceAllString(s, "")
	s = headRe.ReplaceAllString(s, "")
	s = wrapperRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// FromMarkdown renders content that carries no markup at all as Markdown.
// Content with any tag is returned unchanged.
func FromMarkdown(s string) (string, error) {
	if s == "" || anyTagRe.MatchString(s) {
		return s, nil
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(s), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
