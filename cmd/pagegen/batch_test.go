package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"

	"github.com/joestump/pagegen/internal/pagebuilder"
	"github.com/joestump/pagegen/internal/placeholder"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
user: editor@example.com
batches:
  - template_id: tpl-1
    page_builder: elementor
    replacements:
      keyword: {find: "[keyword]", replace: "plumbing"}
      dynamic_0: {find: "[cta]", replace: "Call now"}
    locations: [Austin, Dallas]
    skill_sets: [repair, installation]
`)
	m, err := loadManifest(path)
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if m.User != "editor@example.com" || len(m.Batches) != 1 {
		t.Fatalf("manifest = %+v", m)
	}
	b := m.Batches[0]
	if b.TemplateID != "tpl-1" || b.PageBuilder != pagebuilder.Elementor {
		t.Errorf("request = %+v", b.Request)
	}
	if got := b.Combinations(); got != 4 {
		t.Errorf("Combinations = %d, want 4", got)
	}
	want := placeholder.Set{
		{Label: "keyword", Find: "[keyword]", Replace: "plumbing"},
		{Label: "dynamic_0", Find: "[cta]", Replace: "Call now"},
	}
	if diff := cmp.Diff(want, b.Replacements); diff != "" {
		t.Errorf("replacements mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "no user", body: "batches:\n  - locations: [a]\n", want: "user is required"},
		{name: "no batches", body: "user: a@example.com\n", want: "no batches"},
		{name: "unknown field", body: "user: a@example.com\nbatches:\n  - cities: [a]\n", want: "cities"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadManifest(writeManifest(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger("warn", false)
	if err != nil {
		t.Fatal(err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info enabled at warn level")
	}

	log, err = newLogger("warn", true)
	if err != nil {
		t.Fatal(err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose should enable debug")
	}

	if _, err := newLogger("loud", false); err == nil {
		t.Error("invalid level accepted")
	}
}
