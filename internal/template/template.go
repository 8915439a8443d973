package template

import (
	"io/fs"
	"net/http"
	"strings"
	"unicode/utf8"

	stdtemplate "html/template"

	humanize "github.com/dustin/go-humanize"
	"github.com/golang-cafe/candidate-portal/internal/candidate"
)

type Template struct {
	templates *stdtemplate.Template
}

func NewTemplate(views fs.FS) *Template {
	funcMap := stdtemplate.FuncMap{
		"humantime": humanize.Time,
		"humannumber": func(n int) string {
			return humanize.Comma(int64(n))
		},
		"plural": func(n int, singular, plural string) string {
			if n == 1 {
				return singular
			}
			return plural
		},
		"initial": func(s string) string {
			r, _ := utf8.DecodeRuneInString(s)
			if r == utf8.RuneError {
				return ""
			}
			return strings.ToUpper(string(r))
		},
		"statusLabel": func(s candidate.Status) string {
			return s.Label()
		},
		"genderLabel": func(g candidate.Gender) string {
			for _, o := range candidate.GenderOptions {
				if o.Value == string(g) {
					return o.Label
				}
			}
			return string(g)
		},
		"areaLabel": func(area string) string {
			for _, o := range candidate.InterestAreaOptions {
				if o.Value == area {
					return o.Label
				}
			}
			return area
		},
	}
	return &Template{
		templates: stdtemplate.Must(stdtemplate.New("stdtmpl").Funcs(funcMap).ParseFS(views, "views/*.html")),
	}
}

func (t *Template) Render(w http.ResponseWriter, status int, name string, data interface{}) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return t.templates.ExecuteTemplate(w, name, data)
}
