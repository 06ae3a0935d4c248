package render

import (
	"errors"
	"strings"
)

// ErrInvalidInput is returned when there is no text to render at all
var ErrInvalidInput = errors.New("invalid render input")

// Kind is the style role of a block. The layout engine keys its styles on it.
type Kind string

const (
	KindTitle      Kind = "Title"
	KindHeading    Kind = "Heading"
	KindSubheading Kind = "Subheading"
	KindBody       Kind = "Body"
	KindSpacer     Kind = "Spacer"
)

// Block is one classified line of the source text
type Block struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text,omitempty"`
}

const (
	prefixTitle      = "# "
	prefixHeading    = "## "
	prefixSubheading = "### "
)

// Render splits text into lines and classifies each one independently.
// Every source line yields exactly one block; blank lines become spacers and are never collapsed.
// A final newline does not open an extra line.
func Render(text string) []Block {
	if text == "" {
		return []Block{}
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, classify(line))
	}
	return blocks
}

// RenderPtr is Render for callers holding an optional string
func RenderPtr(text *string) ([]Block, error) {
	if text == nil {
		return nil, ErrInvalidInput
	}
	return Render(*text), nil
}

func classify(line string) Block {
	line = strings.TrimSpace(line)

	switch {
	case line == "":
		return Block{Kind: KindSpacer}
	case strings.HasPrefix(line, prefixTitle):
		return Block{Kind: KindTitle, Text: strings.TrimPrefix(line, prefixTitle)}
	case strings.HasPrefix(line, prefixHeading):
		return Block{Kind: KindHeading, Text: strings.TrimPrefix(line, prefixHeading)}
	case strings.HasPrefix(line, prefixSubheading):
		return Block{Kind: KindSubheading, Text: strings.TrimPrefix(line, prefixSubheading)}
	default:
		return Block{Kind: KindBody, Text: line}
	}
}
