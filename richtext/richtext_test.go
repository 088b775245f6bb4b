package richtext

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParseInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Span
	}{
		{
			name: "bold and italic",
			in:   "**bold** and *italic*",
			want: []Span{
				{Text: "bold", Style: StyleBold},
				{Text: " and ", Style: StylePlain},
				{Text: "italic", Style: StyleItalic},
			},
		},
		{
			name: "italic first when it starts earlier",
			in:   "*a* then **b**",
			want: []Span{
				{Text: "a", Style: StyleItalic},
				{Text: " then ", Style: StylePlain},
				{Text: "b", Style: StyleBold},
			},
		},
		{
			name: "bold wins at same offset",
			in:   "**x**",
			want: []Span{{Text: "x", Style: StyleBold}},
		},
		{
			name: "plain text",
			in:   "no markup here",
			want: []Span{{Text: "no markup here", Style: StylePlain}},
		},
		{
			name: "unterminated marker stays plain",
			in:   "5 * 3",
			want: []Span{{Text: "5 * 3", Style: StylePlain}},
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseInline(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseInline(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseBlocks(t *testing.T) {
	text := "Intro\n- first\n• second\n\n1. one\n12. twelve"
	got := Parse(text)

	kinds := make([]BlockKind, len(got))
	for i, b := range got {
		kinds[i] = b.Kind
	}
	assert.Equal(t, []BlockKind{
		BlockParagraph, BlockBullet, BlockBullet, BlockBlank, BlockNumbered, BlockNumbered,
	}, kinds)
	assert.Equal(t, 12, got[5].Number)
	assert.Equal(t, "second", got[2].Spans[0].Text)
}

func TestParseRequiresSpaceAfterMarker(t *testing.T) {
	got := Parse("-dash\n1.5 goals")
	assert.Equal(t, BlockParagraph, got[0].Kind)
	assert.Equal(t, BlockParagraph, got[1].Kind)
}

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "inline styles",
			in:   "**bold** and *italic*",
			want: "<p><strong>bold</strong> and <em>italic</em></p>",
		},
		{
			name: "bullet list",
			in:   "- a\n- **b**",
			want: "<ul><li>a</li><li><strong>b</strong></li></ul>",
		},
		{
			name: "numbered list after paragraph",
			in:   "Rules:\n1. one\n2. two",
			want: "<p>Rules:</p><ol><li>one</li><li>two</li></ol>",
		},
		{
			name: "numbered list not starting at one",
			in:   "3. three",
			want: `<ol start="3"><li>three</li></ol>`,
		},
		{
			name: "blank line splits lists",
			in:   "- a\n\n- b",
			want: "<ul><li>a</li></ul><ul><li>b</li></ul>",
		},
		{
			name: "html is escaped",
			in:   "<script>alert(1)</script> *x&y*",
			want: "<p>&lt;script&gt;alert(1)&lt;/script&gt; <em>x&amp;y</em></p>",
		},
		{
			name: "empty",
			in:   "  \n ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderHTML(tt.in))
		})
	}
}
