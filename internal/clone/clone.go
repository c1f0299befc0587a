// Package clone copies metadata and taxonomy terms from a template document
// onto a generated one, applying placeholder substitution along the way.
package clone

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/joestump/pagegen/internal/metrics"
	"github.com/joestump/pagegen/internal/pagebuilder"
	"github.com/joestump/pagegen/internal/placeholder"
	"github.com/joestump/pagegen/internal/seo"
	"github.com/joestump/pagegen/internal/store"
)

// ProvenancePrefix marks metadata written by the generator itself.
const ProvenancePrefix = "_pseo_"

// skipKeys are editor bookkeeping keys never copied to a new document.
var skipKeys = map[string]bool{
	"_edit_lock": true,
	"_edit_last": true,
}

// Report summarizes a clone. Failures are counted, never fatal.
type Report struct {
	MetaCopied   int
	MetaFailed   int
	TermsCopied  int
	TermsFailed  int
	BuilderKeys  int
	BuilderFails int
	// Builder is the first page builder whose layout was found on the source,
	// or Generic.
	Builder pagebuilder.Builder
}

// Failed returns the total number of failed writes.
func (r *Report) Failed() int { return r.MetaFailed + r.TermsFailed + r.BuilderFails }

// Cloner copies auxiliary data between documents.
type Cloner struct {
	meta  store.MetaStoreIface
	terms store.TaxonomyStoreIface
	log   *zap.Logger
}

func New(meta store.MetaStoreIface, terms store.TaxonomyStoreIface, log *zap.Logger) *Cloner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cloner{meta: meta, terms: terms, log: log}
}

// Clone copies the metadata, taxonomy terms and page builder layout of
// source onto targetID. Text values and SEO plugin fields are passed through
// set; structured values and builder families are copied verbatim. Only a
// failure to read the source metadata is returned as an error.
func (c *Cloner) Clone(ctx context.Context, source *store.Document, targetID string, set placeholder.Set) (*Report, error) {
	meta, err := c.meta.GetMeta(ctx, source.ID)
	if err != nil {
		return nil, fmt.Errorf("read template metadata: %w", err)
	}

	log := c.log.With(zap.String("source_id", source.ID), zap.String("target_id", targetID))
	report := &Report{}
	familyKeys := pagebuilder.FamilyKeys()

	for _, key := range sortedKeys(meta) {
		if Skipped(key) || familyKeys[key] {
			continue
		}
		value := meta[key]
		switch {
		case value.IsText():
			value = placeholder.ApplyValue(value, set)
		case seo.IsField(key):
			v, err := placeholder.ApplyStructured(value, set)
			if err != nil {
				// Unreadable structures are copied as stored.
				log.Warn("substitute structured SEO field", zap.String("key", key), zap.Error(err))
			} else {
				value = v
			}
		}
		if err := c.meta.SetMeta(ctx, targetID, key, value); err != nil {
			report.MetaFailed++
			metrics.CloneFailuresTotal.WithLabelValues("meta").Inc()
			log.Warn("clone metadata write failed", zap.String("key", key), zap.Error(err))
			continue
		}
		report.MetaCopied++
	}

	c.cloneTerms(ctx, log, source, targetID, report)
	c.cloneBuilders(ctx, log, meta, targetID, report)

	log.Debug("clone complete",
		zap.Int("meta_copied", report.MetaCopied),
		zap.Int("terms_copied", report.TermsCopied),
		zap.Int("builder_keys", report.BuilderKeys),
		zap.Int("failed", report.Failed()))
	return report, nil
}

func (c *Cloner) cloneTerms(ctx context.Context, log *zap.Logger, source *store.Document, targetID string, report *Report) {
	taxonomies, err := c.terms.Taxonomies(ctx, source.Type)
	if err != nil {
		report.TermsFailed++
		metrics.CloneFailuresTotal.WithLabelValues("taxonomy").Inc()
		log.Warn("list taxonomies failed", zap.String("doc_type", source.Type), zap.Error(err))
		return
	}
	for _, tax := range taxonomies {
		ids, err := c.terms.GetTerms(ctx, source.ID, tax)
		if err == nil {
			err = c.terms.SetTerms(ctx, targetID, tax, ids)
		}
		if err != nil {
			report.TermsFailed++
			metrics.CloneFailuresTotal.WithLabelValues("taxonomy").Inc()
			log.Warn("clone terms failed", zap.String("taxonomy", tax), zap.Error(err))
			continue
		}
		report.TermsCopied++
	}
}

func (c *Cloner) cloneBuilders(ctx context.Context, log *zap.Logger, meta store.Meta, targetID string, report *Report) {
	detected := false
	for _, b := range pagebuilder.All() {
		fam := b.Family()
		if fam.Primary == "" {
			continue
		}
		if v, ok := meta[fam.Primary]; !ok || v.IsEmpty() {
			continue
		}
		if !detected {
			report.Builder = b
			detected = true
		}
		for _, key := range fam.Keys {
			v, ok := meta[key]
			if !ok {
				continue
			}
			if err := c.meta.SetMeta(ctx, targetID, key, v); err != nil {
				report.BuilderFails++
				metrics.CloneFailuresTotal.WithLabelValues("builder").Inc()
				log.Warn("clone page builder key failed", zap.String("builder", b.String()), zap.String("key", key), zap.Error(err))
				continue
			}
			report.BuilderKeys++
		}
	}
}

// Skipped reports whether key is never copied by Clone.
func Skipped(key string) bool {
	return skipKeys[key] || strings.HasPrefix(key, ProvenancePrefix)
}

func sortedKeys(m store.Meta) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
