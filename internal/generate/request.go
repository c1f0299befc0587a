package generate

import (
	"strings"

	"github.com/joestump/pagegen/internal/errcode"
	"github.com/joestump/pagegen/internal/pagebuilder"
	"github.com/joestump/pagegen/internal/placeholder"
)

// Strategy selects how a document body is produced.
type Strategy string

const (
	// StrategyLiteral substitutes placeholders in a template.
	StrategyLiteral Strategy = "literal"
	// StrategyRewrite clones a template and has the LLM rewrite its body.
	StrategyRewrite Strategy = "rewrite"
	// StrategyProcedural builds a fixed page skeleton with no LLM call.
	StrategyProcedural Strategy = "procedural"
	// StrategyAI synthesizes a new page through the LLM.
	StrategyAI Strategy = "ai"
)

// Placeholders of the fixed three-field request form.
const (
	LocationToken = "[location]"
	KeywordToken  = "[keyword]"
	SkillSetToken = "[skill_set]"
)

// Labels of the fixed three-field request form.
const (
	LabelLocation = "location"
	LabelKeyword  = "keyword"
	LabelSkillSet = "skill_set"
)

// ParseStrategy validates s. The empty string is returned as-is and
// resolved later against the presence of a template.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case "", StrategyLiteral, StrategyRewrite, StrategyProcedural, StrategyAI:
		return st, nil
	default:
		return "", errcode.New(errcode.BadRequest, "unknown strategy %q", s)
	}
}

// usesTemplate reports whether the strategy clones a template document.
func (s Strategy) usesTemplate() bool {
	return s == StrategyLiteral || s == StrategyRewrite
}

// Request is one generation request.
//
// Template strategies take either Replacements (ordered find/replace rows)
// or the fixed Location/Keyword/SkillSet fields, which become the pairs
// [location], [keyword] and [skill_set]. Synthesis strategies take the
// fixed fields plus Title, Keywords, Tone and WordCount.
type Request struct {
	Strategy     Strategy            `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	TemplateID   string              `json:"template_id,omitempty" yaml:"template_id,omitempty"`
	Replacements placeholder.Set     `json:"replacements,omitempty" yaml:"replacements,omitempty"`
	Location     string              `json:"location,omitempty" yaml:"location,omitempty"`
	Keyword      string              `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	SkillSet     string              `json:"skill_set,omitempty" yaml:"skill_set,omitempty"`
	Title        string              `json:"title,omitempty" yaml:"title,omitempty"`
	Keywords     []string            `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Tone         string              `json:"tone,omitempty" yaml:"tone,omitempty"`
	WordCount    int                 `json:"word_count,omitempty" yaml:"word_count,omitempty"`
	PageBuilder  pagebuilder.Builder `json:"page_builder,omitempty" yaml:"page_builder,omitempty"`
	DocType      string              `json:"doc_type,omitempty" yaml:"doc_type,omitempty"`
}

// strategy resolves the effective strategy.
func (r Request) strategy() Strategy {
	if r.Strategy != "" {
		return r.Strategy
	}
	if r.TemplateID != "" {
		return StrategyLiteral
	}
	return StrategyProcedural
}

// pairs returns the replacement set of a template request.
func (r Request) pairs() (placeholder.Set, error) {
	if len(r.Replacements) > 0 {
		if err := r.Replacements.Validate(); err != nil {
			return nil, err
		}
		return r.Replacements, nil
	}
	if err := r.requireFixedFields(); err != nil {
		return nil, err
	}
	return r.fixedSet(), nil
}

func (r Request) fixedSet() placeholder.Set {
	return placeholder.Set{}.
		Add(LabelLocation, LocationToken, r.Location).
		Add(LabelKeyword, KeywordToken, r.Keyword).
		Add(LabelSkillSet, SkillSetToken, r.SkillSet)
}

func (r Request) requireFixedFields() error {
	var missing []string
	if strings.TrimSpace(r.Location) == "" {
		missing = append(missing, LabelLocation)
	}
	if strings.TrimSpace(r.Keyword) == "" {
		missing = append(missing, LabelKeyword)
	}
	if strings.TrimSpace(r.SkillSet) == "" {
		missing = append(missing, LabelSkillSet)
	}
	if len(missing) > 0 {
		return errcode.New(errcode.MissingFields, "required fields are missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// variable returns the value of a fixed-form variable, falling back to the
// replacement of the pair with the same label.
func (r Request) variable(label string) string {
	switch label {
	case LabelLocation:
		if r.Location != "" {
			return r.Location
		}
	case LabelKeyword:
		if r.Keyword != "" {
			return r.Keyword
		}
	case LabelSkillSet:
		if r.SkillSet != "" {
			return r.SkillSet
		}
	}
	return r.Replacements.ReplaceFor(label)
}

// keywords returns the keyword list recorded as provenance.
func (r Request) keywords() []string {
	if len(r.Keywords) > 0 {
		return r.Keywords
	}
	if kw := r.variable(LabelKeyword); kw != "" {
		return []string{kw}
	}
	return nil
}

// Result describes a generated or previewed document.
type Result struct {
	DocumentID      string   `json:"document_id,omitempty"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug,omitempty"`
	Status          string   `json:"status,omitempty"`
	EditURL         string   `json:"edit_url,omitempty"`
	ViewURL         string   `json:"view_url,omitempty"`
	MetaDescription string   `json:"meta_description"`
	PreviewContent  string   `json:"preview_content,omitempty"`
	Strategy        Strategy `json:"strategy"`
	CloneFailures   int      `json:"clone_failures,omitempty"`
}

// ParseList splits a comma-separated list, trimming blanks.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
