package generate

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/joestump/pagegen/internal/events"
	"github.com/joestump/pagegen/internal/metrics"
	"github.com/joestump/pagegen/internal/pagebuilder"
	"github.com/joestump/pagegen/internal/seo"
	"github.com/joestump/pagegen/internal/store"
)

// Provenance metadata written on every generated document.
const (
	MetaGenerated      = "_pseo_generated"
	MetaGeneratedDate  = "_pseo_generated_date"
	MetaTemplateID     = "_pseo_template_id"
	MetaKeywords       = "_pseo_keywords"
	MetaPageBuilder    = "_pseo_page_builder"
	MetaDescription    = "_pseo_meta_description"
	MetaStructuredData = "_pseo_structured_data"
	MetaKeyword        = "_pseo_keyword"
	MetaLocation       = "_pseo_location"
	MetaSkillSet       = "_pseo_skill_set"
	MetaStrategy       = "_pseo_strategy"
)

// persist inserts the draft and completes every follow-up write. Any failure
// after the insert deletes the new document before returning.
func (s *Service) persist(ctx context.Context, user *store.User, req Request, d *draft) (*Result, error) {
	status := store.StatusDraft
	if s.opts.AutoPublish {
		status = store.StatusPublish
	}
	doc, err := s.docs.Create(ctx, store.NewDocument{
		Type:     d.docType,
		Status:   status,
		Title:    d.title,
		Body:     d.body,
		Excerpt:  d.excerpt,
		AuthorID: user.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	res, err := s.finish(ctx, req, d, doc)
	if err != nil {
		s.rollback(ctx, doc.ID, err)
		return nil, err
	}

	s.recordHistory(ctx, user, req, d, doc)
	s.publish(ctx, user, req, d, doc)
	s.log.Info("document generated",
		zap.String("document_id", doc.ID),
		zap.String("slug", doc.Slug),
		zap.String("strategy", string(req.Strategy)),
		zap.String("user_id", user.ID))
	return res, nil
}

func (s *Service) finish(ctx context.Context, req Request, d *draft, doc *store.Document) (*Result, error) {
	builder := d.builder
	failures := 0

	if req.Strategy.usesTemplate() {
		report, err := s.cloner.Clone(ctx, d.template, doc.ID, d.set)
		if err != nil {
			return nil, err
		}
		failures = report.Failed()
		if builder == pagebuilder.Generic {
			builder = report.Builder
		}
	} else {
		if err := s.setText(ctx, doc.ID, map[string]string{
			MetaKeyword:  req.Keyword,
			MetaLocation: req.Location,
			MetaSkillSet: req.SkillSet,
		}); err != nil {
			return nil, err
		}
	}

	desc, err := s.writeDescription(ctx, doc.ID, d)
	if err != nil {
		return nil, err
	}

	prov := map[string]string{
		MetaGenerated:     "1",
		MetaGeneratedDate: s.now().Format(time.RFC3339),
		MetaKeywords:      strings.Join(req.keywords(), ", "),
		MetaPageBuilder:   builder.String(),
		MetaStrategy:      string(req.Strategy),
	}
	if d.template != nil {
		prov[MetaTemplateID] = d.template.ID
	}
	if err := s.setText(ctx, doc.ID, prov); err != nil {
		return nil, err
	}

	viewURL := s.ViewURL(doc.Slug)
	page := seo.NewWebPage(seo.PageInput{
		Title:       doc.Title,
		Description: desc,
		URL:         viewURL,
		Published:   doc.CreatedAt,
		Modified:    doc.UpdatedAt,
		SiteName:    s.opts.SiteName,
		SiteURL:     s.opts.BaseURL,
		Keyword:     req.variable(LabelKeyword),
		Location:    req.variable(LabelLocation),
	})
	data, err := store.StructuredValue(page)
	if err != nil {
		return nil, err
	}
	if err := s.meta.SetMeta(ctx, doc.ID, MetaStructuredData, data); err != nil {
		return nil, fmt.Errorf("write structured data: %w", err)
	}

	return &Result{
		DocumentID:      doc.ID,
		Title:           doc.Title,
		Slug:            doc.Slug,
		Status:          doc.Status,
		EditURL:         s.EditURL(doc.ID),
		ViewURL:         viewURL,
		MetaDescription: desc,
		Strategy:        req.Strategy,
		CloneFailures:   failures,
	}, nil
}

// writeDescription returns the first existing SEO description, or the one
// synthesized from the body when none exists. Recognized description fields
// that are empty receive the synthesized description; populated ones are
// never overwritten.
func (s *Service) writeDescription(ctx context.Context, docID string, d *draft) (string, error) {
	meta, err := s.meta.GetMeta(ctx, docID)
	if err != nil {
		return "", fmt.Errorf("read document metadata: %w", err)
	}
	synthesized := d.synthesizedDescription()
	if synthesized != "" {
		for _, key := range seo.DescriptionKeys() {
			if v, ok := meta[key]; ok && !v.IsEmpty() {
				continue
			}
			if err := s.meta.SetMeta(ctx, docID, key, store.TextValue(synthesized)); err != nil {
				return "", fmt.Errorf("write %s: %w", key, err)
			}
		}
	}

	desc := existingDescription(meta)
	if desc == "" {
		desc = synthesized
	}
	if err := s.meta.SetMeta(ctx, docID, MetaDescription, store.TextValue(desc)); err != nil {
		return "", fmt.Errorf("write meta description: %w", err)
	}
	return desc, nil
}

// setText writes every non-empty value of kv.
func (s *Service) setText(ctx context.Context, docID string, kv map[string]string) error {
	for _, key := range sortedKeys(kv) {
		if kv[key] == "" {
			continue
		}
		if err := s.meta.SetMeta(ctx, docID, key, store.TextValue(kv[key])); err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
	}
	return nil
}

func (s *Service) recordHistory(ctx context.Context, user *store.User, req Request, d *draft, doc *store.Document) {
	if s.history == nil {
		return
	}
	rec := store.GenerationRecord{
		DocumentID: doc.ID,
		Strategy:   string(req.Strategy),
		Keyword:    req.variable(LabelKeyword),
		Location:   req.variable(LabelLocation),
		SkillSet:   req.variable(LabelSkillSet),
		UserID:     user.ID,
	}
	if d.template != nil {
		rec.TemplateID = sql.NullString{String: d.template.ID, Valid: true}
	}
	if err := s.history.Record(ctx, rec); err != nil {
		s.log.Warn("record generation history", zap.String("document_id", doc.ID), zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, user *store.User, req Request, d *draft, doc *store.Document) {
	ev := events.DocumentGenerated{
		DocumentID:  doc.ID,
		Strategy:    string(req.Strategy),
		Title:       doc.Title,
		Slug:        doc.Slug,
		ViewURL:     s.ViewURL(doc.Slug),
		Keyword:     req.variable(LabelKeyword),
		Location:    req.variable(LabelLocation),
		GeneratedBy: user.ID,
		GeneratedAt: s.now(),
	}
	if d.template != nil {
		ev.TemplateID = d.template.ID
	}
	if err := s.events.PublishGenerated(ctx, ev); err != nil {
		metrics.EventPublishErrorsTotal.Inc()
		s.log.Warn("publish document event", zap.String("document_id", doc.ID), zap.Error(err))
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
