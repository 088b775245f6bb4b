package richtext

import (
	"fmt"
	"html"
	"strings"
)

// RenderHTML renders text as escaped HTML. Consecutive bullet or numbered lines
// form one list; blank lines and paragraphs close any open list.
func RenderHTML(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var b strings.Builder
	open := BlockBlank

	closeList := func() {
		switch open {
		case BlockBullet:
			b.WriteString("</ul>")
		case BlockNumbered:
			b.WriteString("</ol>")
		}
		open = BlockBlank
	}

	for _, block := range Parse(text) {
		switch block.Kind {
		case BlockBullet:
			if open != BlockBullet {
				closeList()
				b.WriteString("<ul>")
				open = BlockBullet
			}
			b.WriteString("<li>")
			writeSpans(&b, block.Spans)
			b.WriteString("</li>")
		case BlockNumbered:
			if open != BlockNumbered {
				closeList()
				if block.Number > 1 {
					fmt.Fprintf(&b, `<ol start="%d">`, block.Number)
				} else {
					b.WriteString("<ol>")
				}
				open = BlockNumbered
			}
			b.WriteString("<li>")
			writeSpans(&b, block.Spans)
			b.WriteString("</li>")
		case BlockParagraph:
			closeList()
			b.WriteString("<p>")
			writeSpans(&b, block.Spans)
			b.WriteString("</p>")
		case BlockBlank:
			closeList()
		}
	}
	closeList()
	return b.String()
}

func writeSpans(b *strings.Builder, spans []Span) {
	for _, s := range spans {
		text := html.EscapeString(s.Text)
		switch s.Style {
		case StyleBold:
			b.WriteString("<strong>" + text + "</strong>")
		case StyleItalic:
			b.WriteString("<em>" + text + "</em>")
		default:
			b.WriteString(text)
		}
	}
}
