// Package seo derives search metadata for generated documents: plain-text
// meta descriptions, the SEO plugin field registry and schema.org blocks.
package seo

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags returns the visible text of an HTML fragment with runs of
// whitespace collapsed to single spaces. Script and style contents are dropped.
// Shortcodes and other bracketed tokens are plain text and survive.
func StripTags(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var sb strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if isRawText(name) {
				skip++
			} else if isBlock(name) {
				sb.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if isRawText(name) && skip > 0 {
				skip--
			} else if isBlock(name) {
				sb.WriteByte(' ')
			}
		case html.SelfClosingTagToken:
			sb.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
			}
		}
	}
}

func isRawText(name []byte) bool {
	switch string(name) {
	case "script", "style", "noscript", "template":
		return true
	}
	return false
}

func isBlock(name []byte) bool {
	switch string(name) {
	case "p", "div", "section", "article", "header", "footer", "li", "ul", "ol",
		"h1", "h2", "h3", "h4", "h5", "h6", "br", "tr", "td", "th", "blockquote":
		return true
	}
	return false
}
