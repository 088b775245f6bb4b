// Package richtext parses the lightweight markup used in rule descriptions:
// "- " or "• " bullets, "N. " numbered items, **bold** and *italic*.
package richtext

import (
	"regexp"
	"strconv"
	"strings"
)

type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockBullet    BlockKind = "bullet"
	BlockNumbered  BlockKind = "numbered"
	BlockBlank     BlockKind = "blank"
)

type Style string

const (
	StylePlain  Style = "plain"
	StyleBold   Style = "bold"
	StyleItalic Style = "italic"
)

type Span struct {
	Text  string `json:"text"`
	Style Style  `json:"style"`
}

type Block struct {
	Kind   BlockKind `json:"kind"`
	Number int       `json:"number,omitempty"`
	Spans  []Span    `json:"spans,omitempty"`
}

var (
	boldPattern     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern   = regexp.MustCompile(`\*(.+?)\*`)
	numberedPattern = regexp.MustCompile(`^(\d+)\.\s+(.*)$`)
)

// Parse classifies each line of text and splits its content into styled spans.
func Parse(text string) []Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			blocks = append(blocks, Block{Kind: BlockBlank})
		case strings.HasPrefix(trimmed, "- "):
			blocks = append(blocks, Block{Kind: BlockBullet, Spans: ParseInline(strings.TrimSpace(trimmed[2:]))})
		case strings.HasPrefix(trimmed, "• "):
			blocks = append(blocks, Block{Kind: BlockBullet, Spans: ParseInline(strings.TrimSpace(strings.TrimPrefix(trimmed, "• ")))})
		default:
			if m := numberedPattern.FindStringSubmatch(trimmed); m != nil {
				n, err := strconv.Atoi(m[1])
				if err == nil {
					blocks = append(blocks, Block{Kind: BlockNumbered, Number: n, Spans: ParseInline(m[2])})
					continue
				}
			}
			blocks = append(blocks, Block{Kind: BlockParagraph, Spans: ParseInline(trimmed)})
		}
	}
	return blocks
}

// ParseInline splits s into plain, bold and italic spans. At every step the
// match starting earliest in the remaining text is taken; when a bold and an
// italic match start at the same offset the bold one is used.
func ParseInline(s string) []Span {
	var spans []Span
	rest := s

	for rest != "" {
		bold := boldPattern.FindStringSubmatchIndex(rest)
		italic := italicPattern.FindStringSubmatchIndex(rest)

		var loc []int
		style := StylePlain
		switch {
		case bold != nil && (italic == nil || bold[0] <= italic[0]):
			loc, style = bold, StyleBold
		case italic != nil:
			loc, style = italic, StyleItalic
		}

		if loc == nil {
			spans = append(spans, Span{Text: rest, Style: StylePlain})
			break
		}
		if loc[0] > 0 {
			spans = append(spans, Span{Text: rest[:loc[0]], Style: StylePlain})
		}
		spans = append(spans, Span{Text: rest[loc[2]:loc[3]], Style: style})
		rest = rest[loc[1]:]
	}
	return spans
}
