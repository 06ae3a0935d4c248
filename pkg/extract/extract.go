package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrNoText          = errors.New("no text could be extracted")
)

// File types as recorded in usage logs
const (
	TypePDF  = "pdf"
	TypePPTX = "pptx"
)

// Extractor turns an uploaded document into plain text
type Extractor interface {
	Extract(r io.ReaderAt, size int64) (string, error)
	Type() string
}

var extractors = map[string]Extractor{
	TypePDF:  PDFExtractor{},
	TypePPTX: PPTXExtractor{},
}

var contentTypes = map[string]string{
	"application/pdf": TypePDF,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": TypePPTX,
}

// ForFile picks an extractor from the file extension, falling back to the content type.
// Legacy binary .ppt decks are not supported.
func ForFile(filename, contentType string) (Extractor, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if e, ok := extractors[ext]; ok {
		return e, nil
	}
	if t, ok := contentTypes[strings.ToLower(strings.TrimSpace(contentType))]; ok {
		return extractors[t], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, filename)
}

// Text reads the whole upload and extracts its text with the matching extractor
func Text(filename, contentType string, r io.Reader) (string, string, error) {
	e, err := ForFile(filename, contentType)
	if err != nil {
		return "", "", err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("read upload: %w", err)
	}

	text, err := e.Extract(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", e.Type(), err
	}
	if strings.TrimSpace(text) == "" {
		return "", e.Type(), ErrNoText
	}
	return text, e.Type(), nil
}
