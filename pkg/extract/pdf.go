package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor reads the text layer page by page
type PDFExtractor struct{}

func (PDFExtractor) Type() string { return TypePDF }

// Extract emits each page's text followed by a newline
func (PDFExtractor) Extract(r io.ReaderAt, size int64) (string, error) {
	rdr, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= rdr.NumPage(); i++ {
		page := rdr.Page(i)
		if page.V.IsNull() {
			continue
		}
		txt, err := page.GetPlainText(nil)
		if err != nil {
			// Image-only or damaged page
			continue
		}
		sb.WriteString(txt)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
