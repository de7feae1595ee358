package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/docsim/internal/domain"
	"github.com/kailas-cloud/docsim/internal/domain/document"
	"github.com/kailas-cloud/docsim/internal/similarity"
)

const eps = 1e-9

func txt(name, content string) document.Document {
	return document.New(name, document.FormatPlainText, document.Bytes(content))
}

func compare(t *testing.T, a, b document.Document) similarity.Score {
	t.Helper()
	s, err := New(similarity.DefaultOptions()).Compare(a, b)
	if err != nil {
		t.Fatalf("Compare(%s, %s): unexpected error: %v", a.Name(), b.Name(), err)
	}
	return s
}

// --- Scenarios ---

func TestCompare_IdenticalText(t *testing.T) {
	got := compare(t, txt("a.txt", "The quick brown fox"), txt("b.txt", "The quick brown fox"))
	if math.Abs(got.Float64()-1) > eps {
		t.Errorf("score = %v, want 1", got)
	}
}

func TestCompare_NoSharedTokens(t *testing.T) {
	got := compare(t, txt("a.txt", "Hello World"), txt("b.txt", "Completely Different Text"))
	if got.Float64() > eps {
		t.Errorf("score = %v, want 0", got)
	}
}

func TestCompare_CaseAndPunctuation(t *testing.T) {
	got := compare(t, txt("a.txt", "Dogs are great pets"), txt("b.txt", "dogs are great pets!!!"))
	if math.Abs(got.Float64()-1) > eps {
		t.Errorf("score = %v, want 1", got)
	}
}

func TestCompare_EmptyDocument(t *testing.T) {
	p := New(similarity.DefaultOptions())
	_, err := p.Compare(txt("empty.txt", ""), txt("b.txt", "Some content"))
	if !errors.Is(err, domain.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	var ede *domain.EmptyDocumentError
	if !errors.As(err, &ede) {
		t.Fatalf("expected EmptyDocumentError, got %T", err)
	}
	if len(ede.Documents) != 1 || ede.Documents[0] != "empty.txt" {
		t.Errorf("expected empty.txt to be named, got %v", ede.Documents)
	}
}

func TestCompare_BothEmpty(t *testing.T) {
	p := New(similarity.DefaultOptions())
	_, err := p.Compare(txt("a.txt", "?!"), txt("b.txt", "   "))
	var ede *domain.EmptyDocumentError
	if !errors.As(err, &ede) {
		t.Fatalf("expected EmptyDocumentError, got %v", err)
	}
	if len(ede.Documents) != 2 {
		t.Errorf("expected both documents named, got %v", ede.Documents)
	}
}

// --- Properties ---

var pairs = [][2]string{
	{"The quick brown fox", "The quick brown fox jumps over the lazy dog"},
	{"alpha beta gamma gamma", "gamma delta"},
	{"Plagiarism is copying. Copying is plagiarism!", "Original work is never copied."},
	{"one", "one one one two"},
	{"Hello World", "Completely Different Text"},
	{"a b c d e f g", "g f e d c b a"},
}

func TestCompare_Deterministic(t *testing.T) {
	for _, p := range pairs {
		first := compare(t, txt("a.txt", p[0]), txt("b.txt", p[1]))
		for i := 0; i < 5; i++ {
			again := compare(t, txt("a.txt", p[0]), txt("b.txt", p[1]))
			if again != first {
				t.Fatalf("non-deterministic score for %q/%q: %v then %v", p[0], p[1], first, again)
			}
		}
	}
}

func TestCompare_Symmetric(t *testing.T) {
	for _, p := range pairs {
		ab := compare(t, txt("a.txt", p[0]), txt("b.txt", p[1]))
		ba := compare(t, txt("b.txt", p[1]), txt("a.txt", p[0]))
		if math.Abs(ab.Float64()-ba.Float64()) > eps {
			t.Errorf("asymmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestCompare_Identity(t *testing.T) {
	for _, p := range pairs {
		for _, s := range p {
			got := compare(t, txt("a.txt", s), txt("b.txt", s))
			if math.Abs(got.Float64()-1) > eps {
				t.Errorf("compare(%q, itself) = %v, want 1", s, got)
			}
		}
	}
}

func TestCompare_Range(t *testing.T) {
	for _, p := range pairs {
		got := compare(t, txt("a.txt", p[0]), txt("b.txt", p[1]))
		f := got.Float64()
		if math.IsNaN(f) || f < 0 || f > 1 {
			t.Errorf("score %v out of [0, 1] for %q/%q", f, p[0], p[1])
		}
	}
}

func TestCompare_WordOrderIgnored(t *testing.T) {
	got := compare(t, txt("a.txt", "a b c d e f g"), txt("b.txt", "g f e d c b a"))
	if math.Abs(got.Float64()-1) > eps {
		t.Errorf("bag-of-words score should ignore order, got %v", got)
	}
}

func TestCompare_PartialOverlapBetweenBounds(t *testing.T) {
	got := compare(t, txt("a.txt", "The quick brown fox"), txt("b.txt", "The quick red fox"))
	if got.Float64() <= 0 || got.Float64() >= 1 {
		t.Errorf("expected a score strictly between 0 and 1, got %v", got)
	}
}

func TestCompare_MixedFormats(t *testing.T) {
	a, err := document.FromBytes("a.txt", []byte("The quick brown fox"))
	if err != nil {
		t.Fatal(err)
	}
	docx := document.New("b.docx", document.FormatWordXML, document.Bytes(buildDOCX(t, "The quick", "brown fox")))
	got := compare(t, a, docx)
	if math.Abs(got.Float64()-1) > eps {
		t.Errorf("score = %v, want 1", got)
	}
}

// --- Failure propagation ---

type stubExtractor struct {
	texts map[string]string
	errs  map[string]error
	calls []string
}

func (s *stubExtractor) Extract(doc document.Document) (string, error) {
	s.calls = append(s.calls, doc.Name())
	if err, ok := s.errs[doc.Name()]; ok {
		return "", err
	}
	return s.texts[doc.Name()], nil
}

func TestCompare_ExtractErrorAborts(t *testing.T) {
	parseErr := &domain.ExtractionError{Document: "a.pdf", Format: "pdf", Kind: domain.ErrParse}
	ex := &stubExtractor{
		texts: map[string]string{"b.txt": "fine"},
		errs:  map[string]error{"a.pdf": parseErr},
	}
	p := NewWithExtractor(ex, similarity.DefaultOptions())

	score, err := p.Compare(document.New("a.pdf", document.FormatPDF, nil), txt("b.txt", "fine"))
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	var ee *domain.ExtractionError
	if !errors.As(err, &ee) || ee != parseErr {
		t.Errorf("expected the extractor's error unchanged, got %v", err)
	}
	if score != 0 {
		t.Errorf("no score may accompany an error, got %v", score)
	}
	if len(ex.calls) != 1 {
		t.Errorf("expected fail-fast after first document, got calls %v", ex.calls)
	}
}

func TestCompare_UnsupportedFormat(t *testing.T) {
	p := New(similarity.DefaultOptions())
	_, err := p.Compare(txt("a.txt", "text"), document.New("b.xyz", document.Format(".xyz"), nil))
	if !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestCompareDetailed_Report(t *testing.T) {
	p := New(similarity.DefaultOptions())
	r, err := p.CompareDetailed(txt("a.txt", "red green blue"), txt("b.txt", "green blue yellow purple"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TokensA != 3 || r.TokensB != 4 {
		t.Errorf("tokens = %d/%d, want 3/4", r.TokensA, r.TokensB)
	}
	if r.Vocabulary != 5 {
		t.Errorf("vocabulary = %d, want 5", r.Vocabulary)
	}
	if r.Shared != 2 {
		t.Errorf("shared = %d, want 2", r.Shared)
	}
}
