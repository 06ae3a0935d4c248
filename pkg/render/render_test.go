package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Block
	}{
		{
			name:  "headings round trip",
			input: "# Title\n\n## Section\ntext line\n### Sub\n",
			want: []Block{
				{Kind: KindTitle, Text: "Title"},
				{Kind: KindSpacer},
				{Kind: KindHeading, Text: "Section"},
				{Kind: KindBody, Text: "text line"},
				{Kind: KindSubheading, Text: "Sub"},
			},
		},
		{
			name:  "consecutive blank lines are not collapsed",
			input: "first\n\n\n\nsecond",
			want: []Block{
				{Kind: KindBody, Text: "first"},
				{Kind: KindSpacer},
				{Kind: KindSpacer},
				{Kind: KindSpacer},
				{Kind: KindBody, Text: "second"},
			},
		},
		{
			name:  "hash without space is body",
			input: "#NoSpace",
			want:  []Block{{Kind: KindBody, Text: "#NoSpace"}},
		},
		{
			name:  "bare hashes are body",
			input: "#\n##\n###",
			want: []Block{
				{Kind: KindBody, Text: "#"},
				{Kind: KindBody, Text: "##"},
				{Kind: KindBody, Text: "###"},
			},
		},
		{
			name:  "deeper headings fall through to body",
			input: "#### Deep",
			want:  []Block{{Kind: KindBody, Text: "#### Deep"}},
		},
		{
			name:  "lines are trimmed before classification",
			input: "   ## Indented  \r\n\t body\t",
			want: []Block{
				{Kind: KindHeading, Text: "Indented"},
				{Kind: KindBody, Text: "body"},
			},
		},
		{
			name:  "whitespace only line is a spacer",
			input: "a\n   \nb",
			want: []Block{
				{Kind: KindBody, Text: "a"},
				{Kind: KindSpacer},
				{Kind: KindBody, Text: "b"},
			},
		},
		{
			name:  "inline markup passes through",
			input: "**Key term**: *energy*",
			want:  []Block{{Kind: KindBody, Text: "**Key term**: *energy*"}},
		},
		{
			name:  "single newline is one spacer",
			input: "\n",
			want:  []Block{{Kind: KindSpacer}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.input))
		})
	}
}

func TestRender_EmptyInput(t *testing.T) {
	blocks := Render("")
	assert.NotNil(t, blocks)
	assert.Empty(t, blocks)
}

func TestRender_OneBlockPerLine(t *testing.T) {
	input := "# A\nb\n\n## C\n\n\n### D\ne"
	assert.Len(t, Render(input), len(strings.Split(input, "\n")))
}

func TestRenderPtr(t *testing.T) {
	_, err := RenderPtr(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	text := "# Hello"
	blocks, err := RenderPtr(&text)
	require.NoError(t, err)
	assert.Equal(t, []Block{{Kind: KindTitle, Text: "Hello"}}, blocks)
}
