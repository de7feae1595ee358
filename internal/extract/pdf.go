package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF joins the plain text of every page with single spaces. Pages without a
// text layer (scans) contribute an empty string; that is not reported.
func extractPDF(content []byte) (text string, err error) {
	// The parser panics on some malformed object graphs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = parseErr("pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		// Encrypted files that need a password fail here; no password is ever supplied.
		return "", parseErr("pdf: %w", err)
	}

	n := r.NumPage()
	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() || p.V.Key("Contents").IsNull() {
			pages = append(pages, "")
			continue
		}
		pageText, err := p.GetPlainText(nil)
		if err != nil {
			return "", parseErr("pdf page %d: %w", i, err)
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, " "), nil
}
