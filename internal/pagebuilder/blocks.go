package pagebuilder

import (
	"fmt"
	"html"
	"strings"
)

// BlockKind enumerates the content blocks the procedural generator emits.
type BlockKind int

const (
	Heading BlockKind = iota
	Paragraph
	List
)

// Block is a single heading, paragraph or bulleted list.
// Text is escaped on render; Items are used by List only.
type Block struct {
	Kind  BlockKind
	Level int
	Text  string
	Items []string
}

// Section groups blocks that a builder renders inside one container.
type Section struct {
	Class  string
	Blocks []Block
}

// H returns a heading block.
func H(level int, text string) Block { return Block{Kind: Heading, Level: level, Text: text} }

// P returns a paragraph block.
func P(text string) Block { return Block{Kind: Paragraph, Text: text} }

// UL returns a bulleted list block.
func UL(items ...string) Block { return Block{Kind: List, Items: items} }

func (b Block) html() string {
	switch b.Kind {
	case Heading:
		level := b.Level
		if level < 1 || level > 6 {
			level = 2
		}
		return fmt.Sprintf("<h%d>%s</h%d>", level, html.EscapeString(b.Text), level)
	case List:
		var sb strings.Builder
		sb.WriteString("<ul>")
		for _, item := range b.Items {
			sb.WriteString("<li>")
			sb.WriteString(html.EscapeString(item))
			sb.WriteString("</li>")
		}
		sb.WriteString("</ul>")
		return sb.String()
	default:
		return "<p>" + html.EscapeString(b.Text) + "</p>"
	}
}

func sectionHTML(s Section) string {
	parts := make([]string, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		parts = append(parts, b.html())
	}
	return strings.Join(parts, "\n")
}

func renderPlain(sections []Section) string {
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		open := "<section>"
		if s.Class != "" {
			open = fmt.Sprintf(`<section class="%s">`, html.EscapeString(s.Class))
		}
		out = append(out, open+"\n"+sectionHTML(s)+"\n</section>")
	}
	return strings.Join(out, "\n")
}

func renderGutenberg(sections []Section) string {
	var out []string
	for _, s := range sections {
		for _, b := range s.Blocks {
			switch b.Kind {
			case Heading:
				attrs := ""
				if b.Level != 2 {
					attrs = fmt.Sprintf(` {"level":%d}`, b.Level)
				}
				h := strings.Replace(b.html(), ">", ` class="wp-block-heading">`, 1)
				out = append(out, "<!-- wp:heading"+attrs+" -->\n"+h+"\n<!-- /wp:heading -->")
			case List:
				ul := strings.Replace(b.html(), "<ul>", `<ul class="wp-block-list">`, 1)
				out = append(out, "<!-- wp:list -->\n"+ul+"\n<!-- /wp:list -->")
			default:
				out = append(out, "<!-- wp:paragraph -->\n"+b.html()+"\n<!-- /wp:paragraph -->")
			}
		}
	}
	return strings.Join(out, "\n\n")
}

func shortcodeRenderer(open, close string) func([]Section) string {
	return func(sections []Section) string {
		out := make([]string, 0, len(sections))
		for _, s := range sections {
			out = append(out, open+"\n"+sectionHTML(s)+"\n"+close)
		}
		return strings.Join(out, "\n")
	}
}
