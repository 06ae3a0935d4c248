package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"student-analyzer-be/pkg/render"

	"github.com/fatih/color"
)

// Renders a markdown guide (for example a saved personalized guide) to PDF
// using the same layout the API serves.
func main() {
	in := flag.String("in", "", "markdown file to render")
	out := flag.String("out", "", "output PDF path (defaults to <in>.pdf)")
	title := flag.String("title", "Personalized Course Guide", "document title")
	flag.Parse()

	if *in == "" {
		color.Red("Usage: render-pdf -in guide.md [-out guide.pdf] [-title \"...\"]")
		os.Exit(2)
	}
	if *out == "" {
		*out = strings.TrimSuffix(*in, filepath.Ext(*in)) + ".pdf"
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		color.Red("Failed to read %s: %v", *in, err)
		os.Exit(1)
	}

	text := string(raw)
	blocks, err := render.RenderPtr(&text)
	if err != nil {
		color.Red("Failed to parse %s: %v", *in, err)
		os.Exit(1)
	}
	color.Cyan("Parsed %d blocks from %s", len(blocks), *in)

	pdf, err := render.NewPDFLayout(*title).Layout(blocks)
	if err != nil {
		color.Red("Failed to lay out PDF: %v", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, pdf, 0o644); err != nil {
		color.Red("Failed to write %s: %v", *out, err)
		os.Exit(1)
	}
	color.Green("✅ Wrote %s (%d bytes)", *out, len(pdf))
}
