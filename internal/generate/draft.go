package generate

import (
	"context"
	"slices"
	"strings"

	"github.com/joestump/pagegen/internal/errcode"
	"github.com/joestump/pagegen/internal/llm"
	"github.com/joestump/pagegen/internal/pagebuilder"
	"github.com/joestump/pagegen/internal/placeholder"
	"github.com/joestump/pagegen/internal/seo"
	"github.com/joestump/pagegen/internal/store"
)

// draft is generated content that has not been written yet.
type draft struct {
	template *store.Document
	set      placeholder.Set
	docType  string
	title    string
	body     string
	excerpt  string
	builder  pagebuilder.Builder
}

// synthesizedDescription derives a meta description from the final body.
// The body is already substituted, so no pairs are applied again.
func (d *draft) synthesizedDescription() string {
	return seo.Description(d.body, nil)
}

// draft produces the title, body and excerpt for req. The only side effect
// is the LLM call of the rewrite and ai strategies.
func (s *Service) draft(ctx context.Context, req Request) (*draft, error) {
	if req.strategy().usesTemplate() {
		return s.templateDraft(ctx, req)
	}
	return s.synthesisDraft(ctx, req)
}

func (s *Service) templateDraft(ctx context.Context, req Request) (*draft, error) {
	set, err := req.pairs()
	if err != nil {
		return nil, err
	}
	tpl, err := s.loadTemplate(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}

	d := &draft{
		template: tpl,
		set:      set,
		docType:  tpl.Type,
		title:    placeholder.Apply(tpl.Title, set),
		body:     placeholder.Apply(tpl.Body, set),
		excerpt:  placeholder.Apply(tpl.Excerpt, set),
		builder:  req.PageBuilder,
	}

	if req.strategy() == StrategyRewrite {
		if err := s.requireLLM(); err != nil {
			return nil, err
		}
		out, err := s.llm.Rewrite(ctx, llm.RewriteRequest{
			TemplateBody: tpl.Body,
			Location:     req.variable(LabelLocation),
			Keyword:      req.variable(LabelKeyword),
			SkillSet:     req.variable(LabelSkillSet),
			Builder:      req.PageBuilder,
		})
		s.observeLLM("rewrite", err)
		if err != nil {
			return nil, err
		}
		// Tokens the model echoed back unchanged still get their replacement.
		d.body = placeholder.Apply(out, set)
	}
	return d, nil
}

func (s *Service) synthesisDraft(ctx context.Context, req Request) (*draft, error) {
	st := req.strategy()
	if st == StrategyProcedural {
		if err := req.requireFixedFields(); err != nil {
			return nil, err
		}
	} else if strings.TrimSpace(req.Title) == "" {
		return nil, errcode.New(errcode.MissingFields, "title is required for the ai strategy")
	}

	d := &draft{builder: req.PageBuilder}
	if req.TemplateID != "" {
		tpl, err := s.loadTemplate(ctx, req.TemplateID)
		if err != nil {
			return nil, err
		}
		d.template = tpl
		d.docType = tpl.Type
	}
	if d.docType == "" {
		docType, err := s.docType(req.DocType)
		if err != nil {
			return nil, err
		}
		d.docType = docType
	}

	fixed := req.fixedSet()
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = req.Keyword + " in " + req.Location
	}
	d.title = placeholder.Apply(title, fixed)

	switch st {
	case StrategyProcedural:
		d.body = req.PageBuilder.Render(proceduralSections(d.title, req.Location, req.Keyword, req.SkillSet))
	case StrategyAI:
		if err := s.requireLLM(); err != nil {
			return nil, err
		}
		out, err := s.llm.Synthesize(ctx, llm.SynthesisRequest{
			Title:     d.title,
			Keywords:  req.keywords(),
			Location:  req.Location,
			SkillSet:  req.SkillSet,
			Tone:      req.Tone,
			WordCount: req.WordCount,
			Builder:   req.PageBuilder,
		})
		s.observeLLM("synthesize", err)
		if err != nil {
			return nil, err
		}
		d.body = out
	}
	return d, nil
}

// docType picks the document type of a synthesized document.
func (s *Service) docType(requested string) (string, error) {
	if requested != "" {
		if !slices.Contains(s.opts.Types, requested) {
			return "", errcode.New(errcode.BadRequest, "document type %q is not enabled for generation", requested)
		}
		return requested, nil
	}
	if slices.Contains(s.opts.Types, "page") {
		return "page", nil
	}
	return s.opts.Types[0], nil
}

// existingDescription returns the first non-empty recognized SEO description.
func existingDescription(meta store.Meta) string {
	for _, key := range seo.DescriptionKeys() {
		if v := meta.Text(key); strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// substitutedMeta returns the recognized SEO fields of meta with set applied.
func substitutedMeta(meta store.Meta, set placeholder.Set) store.Meta {
	out := make(store.Meta)
	for key, v := range meta {
		if seo.IsField(key) {
			// Unreadable structures come back unchanged.
			out[key], _ = placeholder.ApplyStructured(v, set)
		}
	}
	return out
}
