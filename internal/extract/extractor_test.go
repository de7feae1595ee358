package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/docsim/internal/domain"
	"github.com/kailas-cloud/docsim/internal/domain/document"
	"github.com/kailas-cloud/docsim/internal/textnorm"
)

// countingPayload records whether the content was requested.
type countingPayload struct {
	data  []byte
	reads int
}

func (p *countingPayload) Bytes() ([]byte, error) {
	p.reads++
	return p.data, nil
}

type failingPayload struct{ err error }

func (p failingPayload) Bytes() ([]byte, error) { return nil, p.err }

func TestExtract_UnsupportedFormat_DoesNotReadContent(t *testing.T) {
	payload := &countingPayload{data: []byte("irrelevant")}
	doc := document.New("notes.xyz", document.Format(".xyz"), payload)

	_, err := New().Extract(doc)
	if !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	var ufe *domain.UnsupportedFormatError
	if !errors.As(err, &ufe) || ufe.Format != ".xyz" {
		t.Errorf("expected error naming .xyz, got %v", err)
	}
	if payload.reads != 0 {
		t.Errorf("payload read %d times, want 0", payload.reads)
	}
}

func TestExtract_PayloadError(t *testing.T) {
	cause := errors.New("disk gone")
	doc := document.New("a.txt", document.FormatPlainText, failingPayload{err: cause})

	_, err := New().Extract(doc)
	if !errors.Is(err, cause) {
		t.Fatalf("expected payload error, got %v", err)
	}
	if errors.Is(err, domain.ErrDecode) || errors.Is(err, domain.ErrParse) {
		t.Errorf("payload errors must not be classified as content errors: %v", err)
	}
}

// --- plain text ---

func TestExtract_PlainText(t *testing.T) {
	in := "The quick brown fox\n\tjumps"
	doc := document.New("a.txt", document.FormatPlainText, document.Bytes(in))

	got, err := New().Extract(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != in {
		t.Errorf("got %q, want verbatim %q", got, in)
	}
}

func TestExtract_PlainText_Empty(t *testing.T) {
	doc := document.New("empty.txt", document.FormatPlainText, document.Bytes(nil))
	got, err := New().Extract(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestExtract_PlainText_InvalidUTF8(t *testing.T) {
	doc := document.New("bad.txt", document.FormatPlainText, document.Bytes([]byte{'o', 'k', 0xff, 0xfe}))

	_, err := New().Extract(doc)
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	var ee *domain.ExtractionError
	if !errors.As(err, &ee) {
		t.Fatalf("expected ExtractionError, got %T", err)
	}
	if ee.Document != "bad.txt" || ee.Format != string(document.FormatPlainText) {
		t.Errorf("unexpected error context: %+v", ee)
	}
}

// --- docx ---

func TestExtract_DOCX(t *testing.T) {
	data := buildDOCX(t, "First paragraph.", "Second & last.")
	doc := document.New("a.docx", document.FormatWordXML, document.Bytes(data))

	got, err := New().Extract(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "First paragraph. Second & last." {
		t.Errorf("got %q", got)
	}
}

func TestExtract_DOCX_RunsTabsAndBreaks(t *testing.T) {
	body := `<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>` +
		`<w:r><w:t>Hel</w:t></w:r><w:r><w:t>lo</w:t><w:tab/><w:t>there</w:t><w:br/><w:t>friend</w:t></w:r></w:p>` +
		`<w:p/>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`
	data := buildDOCXRaw(t, body)
	doc := document.New("a.docx", document.FormatWordXML, document.Bytes(data))

	got, err := New().Extract(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Hello\tthere\nfriend  cell"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtract_DOCX_TextBoxFollowsAnchorParagraph(t *testing.T) {
	body := `<w:p><w:r><w:t>before</w:t></w:r>` +
		`<w:r><w:pict><w:txbxContent><w:p><w:r><w:t>inbox</w:t></w:r></w:p></w:txbxContent></w:pict></w:r>` +
		`<w:r><w:t>after</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>last</w:t></w:r></w:p>`
	data := buildDOCXRaw(t, body)
	doc := document.New("a.docx", document.FormatWordXML, document.Bytes(data))

	got, err := New().Extract(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "beforeafter inbox last"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtract_DOCX_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
	}{
		{"not a zip", func(_ *testing.T) []byte { return []byte("definitely not a zip archive") }},
		{"missing main part", func(t *testing.T) []byte {
			return zipFiles(t, map[string]string{"word/other.xml": "<x/>"})
		}},
		{"broken xml", func(t *testing.T) []byte {
			return zipFiles(t, map[string]string{"word/document.xml": "<w:document><w:body><w:p>"})
		}},
		{"empty main part", func(t *testing.T) []byte {
			return zipFiles(t, map[string]string{"word/document.xml": ""})
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := document.New("bad.docx", document.FormatWordXML, document.Bytes(tc.data(t)))
			_, err := New().Extract(doc)
			if !errors.Is(err, domain.ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
		})
	}
}

// --- pdf ---

func TestExtract_PDF_Corrupt(t *testing.T) {
	inputs := map[string][]byte{
		"garbage":   []byte("this is not a pdf"),
		"empty":     nil,
		"truncated": []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog"),
	}
	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			doc := document.New("bad.pdf", document.FormatPDF, document.Bytes(data))
			_, err := New().Extract(doc)
			if !errors.Is(err, domain.ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
		})
	}
}

func TestExtract_PDF_Pages(t *testing.T) {
	data := buildPDF(t, "Hello PDF", "", "Third page")
	doc := document.New("a.pdf", document.FormatPDF, document.Bytes(data))

	got, err := New().Extract(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	norm := textnorm.Normalize(got)
	for _, want := range []string{"hello", "pdf", "third", "page"} {
		if !strings.Contains(norm, want) {
			t.Errorf("expected %q in extracted text %q", want, norm)
		}
	}
	if strings.Index(norm, "hello") > strings.Index(norm, "third") {
		t.Errorf("page order not preserved: %q", norm)
	}
}
