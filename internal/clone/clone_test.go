package clone

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/joestump/pagegen/internal/pagebuilder"
	"github.com/joestump/pagegen/internal/placeholder"
	"github.com/joestump/pagegen/internal/store"
	"github.com/joestump/pagegen/internal/testutil"
)

type fixture struct {
	docs   *store.DocumentStore
	meta   *store.MetaStore
	terms  *store.TermStore
	source *store.Document
	target *store.Document
}

func setup(t *testing.T) *fixture {
	t.Helper()
	conn := testutil.NewTestDB(t)
	f := &fixture{
		docs:  store.NewDocumentStore(conn),
		meta:  store.NewMetaStore(conn),
		terms: store.NewTermStore(conn),
	}
	ctx := context.Background()
	var err error
	f.source, err = f.docs.Create(ctx, store.NewDocument{Type: "post", Title: "Services in [location]"})
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	f.target, err = f.docs.Create(ctx, store.NewDocument{Type: "post", Title: "Services in Austin"})
	if err != nil {
		t.Fatalf("create target: %v", err)
	}
	return f
}

func (f *fixture) set(t *testing.T, key string, v store.MetaValue) {
	t.Helper()
	if err := f.meta.SetMeta(context.Background(), f.source.ID, key, v); err != nil {
		t.Fatalf("SetMeta(%s): %v", key, err)
	}
}

func austin() placeholder.Set {
	return placeholder.Set{}.Add("location", "[location]", "Austin")
}

func TestCloneMetadata(t *testing.T) {
	f := setup(t)
	structured, err := store.StructuredValue(map[string]string{"city": "[location]"})
	if err != nil {
		t.Fatal(err)
	}
	f.set(t, "subtitle", store.TextValue("Best in [location]"))
	f.set(t, "_yoast_wpseo_title", store.TextValue("[location] services"))
	f.set(t, "layout_config", structured)
	f.set(t, "_edit_lock", store.TextValue("123:1"))
	f.set(t, "_edit_last", store.TextValue("1"))
	f.set(t, "_pseo_generated", store.TextValue("1"))

	report, err := New(f.meta, f.terms, zap.NewNop()).Clone(context.Background(), f.source, f.target.ID, austin())
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if report.MetaCopied != 3 || report.Failed() != 0 {
		t.Errorf("report = %+v", report)
	}

	got, err := f.meta.GetMeta(context.Background(), f.target.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := store.Meta{
		"subtitle":           store.TextValue("Best in Austin"),
		"_yoast_wpseo_title": store.TextValue("Austin services"),
		"layout_config":      structured,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("target meta mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneTerms(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	cat, err := f.terms.Upsert(ctx, "category", "Plumbing")
	if err != nil {
		t.Fatal(err)
	}
	tag1, _ := f.terms.Upsert(ctx, "post_tag", "emergency")
	tag2, _ := f.terms.Upsert(ctx, "post_tag", "local")
	if err := f.terms.SetTerms(ctx, f.source.ID, "category", []string{cat.ID}); err != nil {
		t.Fatal(err)
	}
	if err := f.terms.SetTerms(ctx, f.source.ID, "post_tag", []string{tag1.ID, tag2.ID}); err != nil {
		t.Fatal(err)
	}

	report, err := New(f.meta, f.terms, nil).Clone(ctx, f.source, f.target.ID, austin())
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if report.TermsCopied != 2 {
		t.Errorf("TermsCopied = %d, want 2", report.TermsCopied)
	}
	for tax, want := range map[string][]string{"category": {cat.ID}, "post_tag": {tag1.ID, tag2.ID}} {
		got, err := f.terms.GetTerms(ctx, f.target.ID, tax)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s terms mismatch (-want +got):\n%s", tax, diff)
		}
	}
}

func TestClonePageBuilderVerbatim(t *testing.T) {
	f := setup(t)
	f.set(t, "_elementor_data", store.TextValue(`[{"elType":"section","settings":{"title":"[location]"}}]`))
	f.set(t, "_elementor_edit_mode", store.TextValue("builder"))
	f.set(t, "_et_pb_old_content", store.TextValue("[location]"))

	report, err := New(f.meta, f.terms, nil).Clone(context.Background(), f.source, f.target.ID, austin())
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if report.Builder != pagebuilder.Elementor {
		t.Errorf("Builder = %v, want elementor", report.Builder)
	}
	if report.BuilderKeys != 2 {
		t.Errorf("BuilderKeys = %d, want 2", report.BuilderKeys)
	}

	got, _ := f.meta.GetMeta(context.Background(), f.target.ID)
	if got.Text("_elementor_data") != `[{"elType":"section","settings":{"title":"[location]"}}]` {
		t.Errorf("_elementor_data was modified: %q", got.Text("_elementor_data"))
	}
	if _, ok := got["_et_pb_old_content"]; ok {
		t.Error("divi keys copied although _et_pb_use_builder is not set")
	}
}

type failingMeta struct {
	store.MetaStoreIface
	getErr  error
	failKey string
	writes  map[string]store.MetaValue
	source  store.Meta
}

func (m *failingMeta) GetMeta(ctx context.Context, id string) (store.Meta, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.source, nil
}

func (m *failingMeta) SetMeta(ctx context.Context, id, key string, v store.MetaValue) error {
	if key == m.failKey {
		return errors.New("disk full")
	}
	m.writes[key] = v
	return nil
}

type noTerms struct{}

func (noTerms) Taxonomies(context.Context, string) ([]string, error) { return nil, nil }
func (noTerms) GetTerms(context.Context, string, string) ([]string, error) {
	return nil, nil
}
func (noTerms) SetTerms(context.Context, string, string, []string) error { return nil }

func TestCloneSourceReadFailureAborts(t *testing.T) {
	m := &failingMeta{getErr: errors.New("connection reset"), writes: map[string]store.MetaValue{}}
	_, err := New(m, noTerms{}, nil).Clone(context.Background(), &store.Document{ID: "s", Type: "post"}, "t", austin())
	if err == nil {
		t.Fatal("Clone should fail when template metadata cannot be read")
	}
	if len(m.writes) != 0 {
		t.Errorf("writes after failed read: %v", m.writes)
	}
}

func TestCloneWriteFailuresAreCounted(t *testing.T) {
	m := &failingMeta{
		failKey: "b",
		writes:  map[string]store.MetaValue{},
		source: store.Meta{
			"a": store.TextValue("1"),
			"b": store.TextValue("2"),
			"c": store.TextValue("3"),
		},
	}
	report, err := New(m, noTerms{}, nil).Clone(context.Background(), &store.Document{ID: "s", Type: "post"}, "t", austin())
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if report.MetaCopied != 2 || report.MetaFailed != 1 {
		t.Errorf("report = %+v, want 2 copied 1 failed", report)
	}
	if _, ok := m.writes["c"]; !ok {
		t.Error("clone stopped after the first failure")
	}
}

func TestSkipped(t *testing.T) {
	for key, want := range map[string]bool{
		"_edit_lock":             true,
		"_edit_last":             true,
		"_pseo_template_id":      true,
		"_pseo_meta_description": true,
		"_thumbnail_id":          false,
		"_yoast_wpseo_metadesc":  false,
	} {
		if got := Skipped(key); got != want {
			t.Errorf("Skipped(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestCloneStructuredSEOField(t *testing.T) {
	f := setup(t)
	keywords, err := store.StructuredValue([]any{
		"plumber [location]",
		map[string]any{"keyword": "[location] <pros>", "score": 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	layout, err := store.StructuredValue([]string{"[location]"})
	if err != nil {
		t.Fatal(err)
	}
	f.set(t, "_aioseo_keywords", keywords)
	f.set(t, "layout_config", layout)

	if _, err := New(f.meta, f.terms, zap.NewNop()).Clone(context.Background(), f.source, f.target.ID, austin()); err != nil {
		t.Fatalf("Clone: %v", err)
	}
	got, err := f.meta.GetMeta(context.Background(), f.target.ID)
	if err != nil {
		t.Fatal(err)
	}

	kw := got["_aioseo_keywords"]
	if kw.IsText() {
		t.Fatalf("_aioseo_keywords became text: %+v", kw)
	}
	var decoded any
	if err := json.Unmarshal(kw.Data, &decoded); err != nil {
		t.Fatal(err)
	}
	want := []any{
		"plumber Austin",
		map[string]any{"keyword": "Austin <pros>", "score": float64(2)},
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Errorf("_aioseo_keywords mismatch (-want +got):\n%s", diff)
	}

	if string(got["layout_config"].Data) != `["[location]"]` {
		t.Errorf("non-SEO structure substituted: %s", got["layout_config"].Data)
	}
}
