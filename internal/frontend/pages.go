package frontend

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/varadpoddar/blog-services/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"index.html", "post.html", "create.html", "edit.html", "404.html"}

type pages struct {
	byName map[string]*template.Template
}

type pageData struct {
	Title   string
	Flashes []string
	Posts   []models.Post
	Post    *models.Post
	Form    formValues
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04")
	},
}

func loadPages() (*pages, error) {
	p := &pages{byName: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("base.html").Funcs(funcs).
			ParseFS(templateFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		p.byName[name] = t
	}
	return p, nil
}

// render consumes pending flashes and writes the page. The template is
// executed into a buffer so a failure can still become a 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	t, ok := h.pages.byName[name]
	if !ok {
		logrus.WithField("template", name).Error("Unknown template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data.Flashes = h.takeFlashes(w, r)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base.html", data); err != nil {
		logrus.WithError(err).WithField("template", name).Error("Rendering page failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
