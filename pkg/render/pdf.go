package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Color is an RGB triple
type Color struct{ R, G, B int }

var (
	ColorBlack     = Color{0, 0, 0}
	ColorDarkBlue  = Color{0, 0, 139}
	ColorDarkGreen = Color{0, 100, 0}
)

// Style is the visual treatment of one block kind, sizes in points
type Style struct {
	Font        string
	FontStyle   string // "", "B", "I", "BI"
	Size        float64
	Color       Color
	Align       string // L, C, R, J
	SpaceBefore float64
	SpaceAfter  float64
}

// LineHeight follows the usual 1.2 leading
func (s Style) LineHeight() float64 {
	return s.Size * 1.2
}

// DefaultStyles is the course-guide look: large centred title, coloured headings, justified body.
func DefaultStyles() map[Kind]Style {
	return map[Kind]Style{
		KindTitle:      {Font: "Helvetica", FontStyle: "B", Size: 24, Color: ColorDarkBlue, Align: "C", SpaceAfter: 30},
		KindHeading:    {Font: "Helvetica", FontStyle: "B", Size: 16, Color: ColorDarkBlue, Align: "L", SpaceBefore: 20, SpaceAfter: 10},
		KindSubheading: {Font: "Helvetica", FontStyle: "B", Size: 14, Color: ColorDarkGreen, Align: "L", SpaceBefore: 15, SpaceAfter: 8},
		KindBody:       {Font: "Helvetica", Size: 11, Color: ColorBlack, Align: "J", SpaceAfter: 10},
	}
}

const (
	spacerHeight = 6.0
	pageMargin   = 72.0 // one inch
)

// PDFLayout lays render blocks out on US Letter pages
type PDFLayout struct {
	Styles map[Kind]Style
	Title  string
	Author string
}

func NewPDFLayout(title string) *PDFLayout {
	return &PDFLayout{
		Styles: DefaultStyles(),
		Title:  title,
	}
}

// Layout produces the PDF bytes for blocks, in order, breaking pages automatically
func (l *PDFLayout) Layout(blocks []Block) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	if l.Title != "" {
		pdf.SetTitle(l.Title, true)
	}
	if l.Author != "" {
		pdf.SetAuthor(l.Author, true)
	}
	pdf.SetCreator("student-analyzer", true)
	pdf.AddPage()

	// Core fonts are cp1252; characters outside it are replaced rather than breaking the document
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// The gap between two blocks is the larger of space-after and the next space-before
	pendingAfter := 0.0
	for _, b := range blocks {
		if b.Kind == KindSpacer {
			pdf.Ln(spacerHeight)
			continue
		}

		style, ok := l.Styles[b.Kind]
		if !ok {
			return nil, fmt.Errorf("no style for block kind %q", b.Kind)
		}

		if gap := max(style.SpaceBefore, pendingAfter); gap > 0 {
			pdf.Ln(gap)
		}
		pdf.SetFont(style.Font, style.FontStyle, style.Size)
		pdf.SetTextColor(style.Color.R, style.Color.G, style.Color.B)
		pdf.MultiCell(0, style.LineHeight(), tr(stripInlineMarkup(b.Text)), "", style.Align, false)
		pendingAfter = style.SpaceAfter
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// stripInlineMarkup drops markdown bold markers that the core fonts cannot express inline
func stripInlineMarkup(text string) string {
	return strings.ReplaceAll(text, "**", "")
}
