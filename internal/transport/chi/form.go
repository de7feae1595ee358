package chi

import (
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

const missingFilesMessage = "Please upload two files."

// flash is a one-shot message rendered above the upload form.
type flash struct {
	Category string // "success" or "error"
	Message  string
}

type indexPage struct {
	Flashes []flash
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Document Similarity Checker</title>
<style>
body { font-family: sans-serif; max-width: 40em; margin: 3em auto; }
.flash { padding: .6em 1em; border-radius: 4px; margin-bottom: 1em; }
.flash.success { background: #e3f6e5; color: #1b5e20; }
.flash.error { background: #fdecea; color: #b71c1c; }
label { display: block; margin-top: 1em; }
</style>
</head>
<body>
<h1>Document Similarity Checker</h1>
{{range .Flashes}}<div class="flash {{.Category}}">{{.Message}}</div>
{{end}}<form method="post" action="/" enctype="multipart/form-data">
<label>First document (.txt, .pdf, .docx) <input type="file" name="file1"></label>
<label>Second document (.txt, .pdf, .docx) <input type="file" name="file2"></label>
<p><button type="submit">Compare</button></p>
</form>
</body>
</html>
`))

// Index handles GET /.
func (s *Server) Index(w http.ResponseWriter, _ *http.Request) {
	s.renderIndex(w, indexPage{})
}

// SubmitForm handles POST / and renders the score or the failure as a flash message.
func (s *Server) SubmitForm(w http.ResponseWriter, r *http.Request) {
	a, b, err := readUploads(w, r, s.maxFileBytes)
	if err != nil {
		s.renderIndex(w, indexPage{Flashes: []flash{formError(err)}})
		return
	}

	res, err := s.checks.Check(r.Context(), a, b)
	if err != nil {
		s.logger.Warn("form comparison failed", zap.Error(err))
		s.renderIndex(w, indexPage{Flashes: []flash{formError(err)}})
		return
	}

	s.renderIndex(w, indexPage{Flashes: []flash{{
		Category: "success",
		Message:  "Similarity Score: " + res.Report.Score.Percent(),
	}}})
}

func formError(err error) flash {
	if errors.Is(err, errMissingFile) {
		return flash{Category: "error", Message: missingFilesMessage}
	}
	return flash{Category: "error", Message: safeDomainMessage(err)}
}

func (s *Server) renderIndex(w http.ResponseWriter, page indexPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := indexTemplate.Execute(w, page); err != nil {
		s.logger.Error("render index", zap.Error(err))
	}
}
