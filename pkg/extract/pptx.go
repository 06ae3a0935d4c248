package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const drawingNS = "http://schemas.openxmlformats.org/drawingml/2006/main"

var slidePath = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// PPTXExtractor reads the text frames of every slide in an Office Open XML deck
type PPTXExtractor struct{}

func (PPTXExtractor) Type() string { return TypePPTX }

// Extract writes "Slide N:" followed by one line per text shape and a blank line after each slide
func (PPTXExtractor) Extract(r io.ReaderAt, size int64) (string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("open pptx: %w", err)
	}

	type slide struct {
		num  int
		file *zip.File
	}
	var slides []slide
	for _, f := range zr.File {
		m := slidePath.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		slides = append(slides, slide{num: n, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var sb strings.Builder
	for i, s := range slides {
		shapes, err := slideShapes(s.file)
		if err != nil {
			return "", fmt.Errorf("slide %d: %w", s.num, err)
		}
		fmt.Fprintf(&sb, "Slide %d:\n", i+1)
		for _, text := range shapes {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// slideShapes returns the text of each shape with a text body, paragraphs joined by newlines
func slideShapes(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var (
		shapes     []string
		paragraphs []string
		para       strings.Builder
		inShape    bool
		hasBody    bool
		inText     bool
	)

	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "sp":
				inShape, hasBody, paragraphs = true, false, nil
			case t.Name.Local == "txBody" && inShape:
				hasBody = true
			case t.Name.Local == "p" && t.Name.Space == drawingNS:
				para.Reset()
			case t.Name.Local == "t" && t.Name.Space == drawingNS:
				inText = true
			case t.Name.Local == "br" && t.Name.Space == drawingNS:
				para.WriteString("\v")
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		case xml.EndElement:
			switch {
			case t.Name.Local == "t" && t.Name.Space == drawingNS:
				inText = false
			case t.Name.Local == "p" && t.Name.Space == drawingNS:
				if inShape {
					paragraphs = append(paragraphs, para.String())
				}
			case t.Name.Local == "sp":
				if inShape && hasBody {
					shapes = append(shapes, strings.Join(paragraphs, "\n"))
				}
				inShape = false
			}
		}
	}
	return shapes, nil
}
