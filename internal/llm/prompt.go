package llm

import (
	"bytes"
	"embed"
	"strings"
	"text/template"

	"github.com/joestump/pagegen/internal/pagebuilder"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

// promptData holds the variables available in the prompt templates.
// A custom llm.prompt template sees the same fields.
type promptData struct {
	Content           string
	Title             string
	Keywords          []string
	Location          string
	Keyword           string
	SkillSet          string
	Tone              string
	WordCount         int
	CommonDefinitions string
	Builder           pagebuilder.Builder
}

type prompts struct {
	system      string
	rewriteTmpl *template.Template
	synthTmpl   *template.Template
}

var funcs = template.FuncMap{
	"join": strings.Join,
}

// loadPrompts parses the embedded templates. A non-empty custom template
// replaces the embedded rewrite prompt.
func loadPrompts(custom string) (*prompts, error) {
	system, err := promptFS.ReadFile("prompts/system.tmpl")
	if err != nil {
		return nil, err
	}
	rewriteSrc, err := promptFS.ReadFile("prompts/rewrite.tmpl")
	if err != nil {
		return nil, err
	}
	if custom != "" {
		rewriteSrc = []byte(custom)
	}
	rw, err := template.New("rewrite").Funcs(funcs).Parse(string(rewriteSrc))
	if err != nil {
		return nil, err
	}
	synth, err := template.New("synthesize.tmpl").Funcs(funcs).ParseFS(promptFS, "prompts/synthesize.tmpl")
	if err != nil {
		return nil, err
	}
	return &prompts{
		system:      strings.TrimSpace(string(system)),
		rewriteTmpl: rw,
		synthTmpl:   synth,
	}, nil
}

func (p *prompts) rewrite(data promptData) (string, error) {
	return execute(p.rewriteTmpl, data)
}

func (p *prompts) synthesize(data promptData) (string, error) {
	return execute(p.synthTmpl, data)
}

func execute(tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
