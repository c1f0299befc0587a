package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/joestump/pagegen/web"
)

// pageCache maps a page file name (e.g. "document.html") to a compiled set
// containing base.html and that one page, so {{define}} blocks don't collide.
var pageCache map[string]*template.Template

func init() {
	pageCache = make(map[string]*template.Template)
	err := fs.WalkDir(web.TemplateFS, "templates/pages", func(p string, d fs.DirEntry, e error) error {
		if e != nil || d.IsDir() || !strings.HasSuffix(p, ".html") {
			return e
		}
		t, err := template.New("").ParseFS(web.TemplateFS, "templates/base.html", p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		pageCache[path.Base(p)] = t
		return nil
	})
	if err != nil {
		panic("build template cache: " + err.Error())
	}
}

// render executes the base layout with page into a buffer first, so a
// template error never leaves a half-written response.
func render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := pageCache[page]
	if !ok {
		http.Error(w, "template not found: "+page, http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
