package pagebuilder

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Builder
		wantErr bool
	}{
		{in: "", want: Generic},
		{in: "gutenberg", want: Gutenberg},
		{in: "Elementor", want: Elementor},
		{in: "divi-builder", want: Divi},
		{in: "divi", want: Divi},
		{in: "wpbakery", want: WPBakery},
		{in: "oxygen", want: Oxygen},
		{in: "fusion-builder", want: Fusion},
		{in: "beaver", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Parse(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEveryVariantIsComplete(t *testing.T) {
	for _, b := range All() {
		if b.String() == "" || b.Name() == "" || b.PromptHint() == "" {
			t.Errorf("builder %d is missing slug, name or hint", b)
		}
		if b.Render([]Section{{Blocks: []Block{P("x")}}}) == "" {
			t.Errorf("builder %s renders nothing", b)
		}
		back, err := Parse(b.String())
		if err != nil || back != b {
			t.Errorf("Parse(%q) = %v, %v; want %v", b.String(), back, err, b)
		}
	}
}

func TestRender(t *testing.T) {
	sections := []Section{{Blocks: []Block{H(1, "Plumbers in Austin"), P("Fast & friendly."), UL("Repairs", "Installs")}}}

	tests := []struct {
		builder Builder
		want    []string
	}{
		{builder: Generic, want: []string{"<section>", "<h1>Plumbers in Austin</h1>", "<p>Fast &amp; friendly.</p>", "<li>Repairs</li>"}},
		{builder: Gutenberg, want: []string{`<!-- wp:heading {"level":1} -->`, `<h1 class="wp-block-heading">`, "<!-- wp:paragraph -->", `<ul class="wp-block-list">`}},
		{builder: Divi, want: []string{`[et_pb_column type="4_4"][et_pb_text]`, "[/et_pb_section]"}},
		{builder: WPBakery, want: []string{"[vc_row][vc_column][vc_column_text]", "[/vc_row]"}},
		{builder: Fusion, want: []string{"[fusion_builder_container]", "[/fusion_text]"}},
	}
	for _, tt := range tests {
		t.Run(tt.builder.String(), func(t *testing.T) {
			got := tt.builder.Render(sections)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("render missing %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestFamilies(t *testing.T) {
	fams := Families()
	if len(fams) != 5 {
		t.Fatalf("len(Families()) = %d, want 5", len(fams))
	}
	keys := FamilyKeys()
	for _, k := range []string{"_elementor_data", "_et_pb_use_builder", "_wpb_vc_js_status", "ct_builder_shortcodes", "fusion_builder_status"} {
		if !keys[k] {
			t.Errorf("FamilyKeys missing %q", k)
		}
	}
	if Gutenberg.Family().Primary != "" {
		t.Error("gutenberg should not declare a metadata family")
	}
}
