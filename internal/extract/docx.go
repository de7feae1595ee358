package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const (
	docxMainPart = "word/document.xml"
	wordMLNS     = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	// maxDocxPartSize bounds the decompressed main part (zip bomb guard).
	maxDocxPartSize = 64 << 20
)

// extractDOCX joins the paragraph texts of the main document part with single spaces.
// Paragraphs nested in tables and text boxes are kept in document order.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", parseErr("docx: open package: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == docxMainPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", parseErr("docx: package has no %s", docxMainPart)
	}

	rc, err := part.Open()
	if err != nil {
		return "", parseErr("docx: open %s: %w", docxMainPart, err)
	}
	defer func() { _ = rc.Close() }()

	paragraphs, err := readParagraphs(io.LimitReader(rc, maxDocxPartSize))
	if err != nil {
		return "", parseErr("docx: %w", err)
	}
	return strings.Join(paragraphs, " "), nil
}

// readParagraphs streams WordprocessingML and returns the text of every w:p element in the
// order the paragraphs open. A paragraph is the concatenation of its w:t runs, with w:tab
// as a tab and w:br/w:cr as a newline.
func readParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	type openParagraph struct {
		slot int
		text strings.Builder
	}

	var (
		paragraphs []string
		open       []*openParagraph
		inText     bool
		runDepth   int
		seenRoot   bool
	)
	current := func() *strings.Builder {
		if len(open) == 0 {
			return nil
		}
		return &open[len(open)-1].text
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			seenRoot = true
			if t.Name.Space != wordMLNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				// The slot is taken at the opening tag so a paragraph nested in a text box
				// follows the paragraph that anchors it.
				paragraphs = append(paragraphs, "")
				open = append(open, &openParagraph{slot: len(paragraphs) - 1})
			case "r":
				runDepth++
			case "t":
				inText = true
			case "tab":
				// w:tab also appears as a tab stop definition in paragraph properties.
				if b := current(); b != nil && runDepth > 0 {
					b.WriteByte('\t')
				}
			case "br", "cr":
				if b := current(); b != nil && runDepth > 0 {
					b.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordMLNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				if n := len(open); n > 0 {
					paragraphs[open[n-1].slot] = open[n-1].text.String()
					open = open[:n-1]
				}
			case "r":
				if runDepth > 0 {
					runDepth--
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				if b := current(); b != nil {
					b.Write(t)
				}
			}
		}
	}

	if !seenRoot {
		return nil, errors.New("main document part is empty")
	}
	return paragraphs, nil
}
