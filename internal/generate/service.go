// Package generate orchestrates the production of derived documents from
// templates or from scratch.
package generate

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/joestump/pagegen/internal/clone"
	"github.com/joestump/pagegen/internal/config"
	"github.com/joestump/pagegen/internal/errcode"
	"github.com/joestump/pagegen/internal/events"
	"github.com/joestump/pagegen/internal/llm"
	"github.com/joestump/pagegen/internal/metrics"
	"github.com/joestump/pagegen/internal/store"
)

// HistoryRecorder stores one row per persisted generation.
type HistoryRecorder interface {
	Record(ctx context.Context, rec store.GenerationRecord) error
}

// Options are the orchestrator settings taken from configuration.
type Options struct {
	BaseURL         string
	SiteName        string
	MaxCombinations int
	Types           []string
	AutoPublish     bool
}

// OptionsFromConfig extracts Options from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseURL:         cfg.Site.BaseURL,
		SiteName:        cfg.Site.Name,
		MaxCombinations: cfg.Generation.MaxCombinations,
		Types:           cfg.Generation.Types,
		AutoPublish:     cfg.Generation.AutoPublish,
	}
}

// Deps are the collaborators of a Service. LLM, History and Events may be
// nil: LLM strategies then fail with api_key_missing, history is not kept
// and no events are published.
type Deps struct {
	Documents store.DocumentStoreIface
	Meta      store.MetaStoreIface
	Terms     store.TaxonomyStoreIface
	History   HistoryRecorder
	LLM       llm.Generator
	Events    events.Publisher
	Logger    *zap.Logger
}

// Service generates documents. It holds no per-request state and is safe
// for concurrent use.
type Service struct {
	docs    store.DocumentStoreIface
	meta    store.MetaStoreIface
	cloner  *clone.Cloner
	history HistoryRecorder
	llm     llm.Generator
	events  events.Publisher
	log     *zap.Logger
	opts    Options
	now     func() time.Time
}

func New(d Deps, opts Options) *Service {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ev := d.Events
	if ev == nil {
		ev = events.Noop{}
	}
	if opts.MaxCombinations <= 0 {
		opts.MaxCombinations = 100
	}
	if len(opts.Types) == 0 {
		opts.Types = []string{"page", "post"}
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Service{
		docs:    d.Documents,
		meta:    d.Meta,
		cloner:  clone.New(d.Meta, d.Terms, log),
		history: d.History,
		llm:     d.LLM,
		events:  ev,
		log:     log,
		opts:    opts,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// MaxCombinations returns the batch ceiling.
func (s *Service) MaxCombinations() int { return s.opts.MaxCombinations }

// EditURL returns the API location of a document.
func (s *Service) EditURL(id string) string { return s.opts.BaseURL + "/api/v1/documents/" + id }

// ViewURL returns the public location of a document.
func (s *Service) ViewURL(slug string) string { return s.opts.BaseURL + "/p/" + slug }

// Generate validates req and persists a new draft document.
func (s *Service) Generate(ctx context.Context, user *store.User, req Request) (*Result, error) {
	start := time.Now()
	strategy, err := s.resolve(req)
	if err == nil {
		req.Strategy = strategy
	}
	var res *Result
	if err == nil {
		res, err = s.generate(ctx, user, req)
	}

	code := "ok"
	if err != nil {
		code = string(errcode.CodeOf(err))
	}
	metrics.GenerationsTotal.WithLabelValues(string(req.strategy()), code).Inc()
	metrics.GenerationDuration.WithLabelValues(string(req.strategy())).Observe(time.Since(start).Seconds())
	return res, err
}

func (s *Service) generate(ctx context.Context, user *store.User, req Request) (*Result, error) {
	if !user.Can(store.CapPublishPages) {
		return nil, errcode.New(errcode.Unauthorized, "insufficient permissions to generate documents")
	}
	d, err := s.draft(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, user, req, d)
}

// Preview runs the same content path as Generate without writing anything.
func (s *Service) Preview(ctx context.Context, user *store.User, req Request) (*Result, error) {
	strategy, err := s.resolve(req)
	var res *Result
	if err == nil {
		req.Strategy = strategy
		res, err = s.preview(ctx, user, req)
	}
	code := "ok"
	if err != nil {
		code = string(errcode.CodeOf(err))
	}
	metrics.PreviewsTotal.WithLabelValues(string(req.strategy()), code).Inc()
	return res, err
}

func (s *Service) preview(ctx context.Context, user *store.User, req Request) (*Result, error) {
	if !user.Can(store.CapEditPages) {
		return nil, errcode.New(errcode.Unauthorized, "insufficient permissions to preview documents")
	}
	d, err := s.draft(ctx, req)
	if err != nil {
		return nil, err
	}
	desc := d.synthesizedDescription()
	if req.Strategy.usesTemplate() {
		tplMeta, err := s.meta.GetMeta(ctx, d.template.ID)
		if err != nil {
			return nil, fmt.Errorf("read template metadata: %w", err)
		}
		if existing := existingDescription(substitutedMeta(tplMeta, d.set)); existing != "" {
			desc = existing
		}
	}
	return &Result{
		Title:           d.title,
		MetaDescription: desc,
		PreviewContent:  d.body,
		Strategy:        req.Strategy,
	}, nil
}

// resolve checks the strategy against the presence of a template.
func (s *Service) resolve(req Request) (Strategy, error) {
	st, err := ParseStrategy(string(req.Strategy))
	if err != nil {
		return "", err
	}
	req.Strategy = st
	st = req.strategy()
	if st.usesTemplate() && req.TemplateID == "" {
		return "", errcode.New(errcode.MissingFields, "template_id is required for the %s strategy", st)
	}
	return st, nil
}

// loadTemplate resolves templateID to a document of an allowed type.
func (s *Service) loadTemplate(ctx context.Context, templateID string) (*store.Document, error) {
	tpl, err := s.docs.Get(ctx, templateID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errcode.New(errcode.InvalidTemplate, "template %s does not exist", templateID)
	}
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	if !slices.Contains(s.opts.Types, tpl.Type) {
		return nil, errcode.New(errcode.InvalidTemplate, "template %s has type %q, expected one of %s",
			templateID, tpl.Type, strings.Join(s.opts.Types, ", "))
	}
	return tpl, nil
}

// rollback removes a document whose generation failed after insert.
func (s *Service) rollback(ctx context.Context, id string, cause error) {
	// The request context may already be done; deletion must still run.
	ctx = context.WithoutCancel(ctx)
	if err := s.docs.Delete(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		s.log.Error("rollback of failed generation left a document behind",
			zap.String("document_id", id), zap.NamedError("cause", cause), zap.Error(err))
		return
	}
	s.log.Warn("generation rolled back", zap.String("document_id", id), zap.Error(cause))
}

func (s *Service) observeLLM(op string, err error) {
	code := "ok"
	if err != nil {
		code = string(errcode.CodeOf(err))
	}
	metrics.LLMRequestsTotal.WithLabelValues(op, code).Inc()
}

func (s *Service) requireLLM() error {
	if s.llm == nil {
		return errcode.New(errcode.APIKeyMissing, "no LLM provider is configured")
	}
	return nil
}
