package placeholder

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/joestump/pagegen/internal/errcode"
	"github.com/joestump/pagegen/internal/store"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		content string
		set     Set
		want    string
	}{
		{
			name:    "empty set leaves content unchanged",
			content: "Services in [location]",
			set:     nil,
			want:    "Services in [location]",
		},
		{
			name:    "replaces every occurrence",
			content: "[location] plumbers serving [location]",
			set:     Set{{Label: "location", Find: "[location]", Replace: "Austin"}},
			want:    "Austin plumbers serving Austin",
		},
		{
			name:    "empty find is a no-op",
			content: "Services in [location]",
			set:     Set{{Label: "location", Find: "", Replace: "Austin"}},
			want:    "Services in [location]",
		},
		{
			name:    "empty replace is a no-op",
			content: "Services in [location]",
			set:     Set{{Label: "location", Find: "[location]", Replace: ""}},
			want:    "Services in [location]",
		},
		{
			name:    "literal match, no regex",
			content: "a.c abc",
			set:     Set{{Find: "a.c", Replace: "X"}},
			want:    "X abc",
		},
		{
			name:    "unmatched shortcode survives",
			content: `<p>[keyword]</p>[contact_form id="123"]`,
			set:     Set{{Label: "keyword", Find: "[keyword]", Replace: "Roofing"}},
			want:    `<p>Roofing</p>[contact_form id="123"]`,
		},
		{
			// Observed behavior: later pairs see the output of earlier pairs.
			name:    "sequential application chains replacements",
			content: "[a]",
			set: Set{
				{Label: "first", Find: "[a]", Replace: "[b]"},
				{Label: "second", Find: "[b]", Replace: "done"},
			},
			want: "done",
		},
		{
			name:    "order matters for chained pairs",
			content: "[a]",
			set: Set{
				{Label: "second", Find: "[b]", Replace: "done"},
				{Label: "first", Find: "[a]", Replace: "[b]"},
			},
			want: "[b]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Apply(tt.content, tt.set); got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestApply_IdempotentOnceNoMatchesRemain(t *testing.T) {
	set := Set{
		{Label: "keyword", Find: "[keyword]", Replace: "Web Developer"},
		{Label: "location", Find: "[location]", Replace: "Austin"},
	}
	content := "<h1>[keyword] in [location]</h1><p>Hire a [keyword] today.</p>"

	once := Apply(content, set)
	twice := Apply(once, set)
	if once != twice {
		t.Errorf("second pass changed content:\n once: %q\ntwice: %q", once, twice)
	}
}

func TestApplyValue(t *testing.T) {
	set := Set{{Label: "location", Find: "[location]", Replace: "Austin"}}

	text := ApplyValue(store.TextValue("Plumbers in [location]"), set)
	if text.Text != "Plumbers in Austin" {
		t.Errorf("text value = %q, want %q", text.Text, "Plumbers in Austin")
	}

	structured, err := store.StructuredValue(map[string]string{"title": "[location]"})
	if err != nil {
		t.Fatalf("StructuredValue: %v", err)
	}
	got := ApplyValue(structured, set)
	if string(got.Data) != string(structured.Data) {
		t.Errorf("structured value changed: %s", got.Data)
	}
}

func TestApplyStructured(t *testing.T) {
	set := Set{{Label: "location", Find: "[location]", Replace: "Austin"}}
	in := store.MetaValue{Kind: store.MetaStructured, Data: json.RawMessage(`{"[location]":["<b>[location]</b>",1.50,true,null]}`)}

	got, err := ApplyStructured(in, set)
	if err != nil {
		t.Fatalf("ApplyStructured: %v", err)
	}
	if want := `{"[location]":["<b>Austin</b>",1.50,true,null]}`; string(got.Data) != want {
		t.Errorf("ApplyStructured = %s, want %s", got.Data, want)
	}
	if got.IsText() {
		t.Error("structured value became text")
	}

	text, err := ApplyStructured(store.TextValue("[location]"), set)
	if err != nil || text.Text != "Austin" {
		t.Errorf("text value = %+v, %v", text, err)
	}

	if _, err := ApplyStructured(store.MetaValue{Kind: store.MetaStructured, Data: json.RawMessage(`{broken`)}, set); err == nil {
		t.Error("invalid JSON accepted")
	}
}

func TestSet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		set     Set
		wantErr bool
	}{
		{name: "complete pair", set: Set{{Label: "keyword", Find: "a", Replace: "b"}}},
		{name: "empty set", set: nil, wantErr: true},
		{name: "missing replace", set: Set{{Label: "keyword", Find: "a"}}, wantErr: true},
		{name: "missing find", set: Set{{Label: "dynamic_0", Replace: "b"}}, wantErr: true},
		{
			name:    "one incomplete among complete",
			set:     Set{{Label: "keyword", Find: "a", Replace: "b"}, {Label: "dynamic_0", Find: "c"}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errcode.Is(err, errcode.MissingFields) {
				t.Errorf("Validate() = %v, want missing_fields", err)
			}
		})
	}
}

func TestSet_UnmarshalJSON_ObjectKeepsOrder(t *testing.T) {
	raw := `{
		"location": {"find": "[location]", "replace": "Austin"},
		"keyword": {"find": "[keyword]", "replace": "Plumber"},
		"dynamic_0": {"find": "Acme", "replace": "Globex"}
	}`
	var set Set
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := Set{
		{Label: "location", Find: "[location]", Replace: "Austin"},
		{Label: "keyword", Find: "[keyword]", Replace: "Plumber"},
		{Label: "dynamic_0", Find: "Acme", Replace: "Globex"},
	}
	if diff := cmp.Diff(want, set); diff != "" {
		t.Errorf("set mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_UnmarshalJSON_Array(t *testing.T) {
	raw := `[{"label":"keyword","find":"[keyword]","replace":"Plumber"}]`
	var set Set
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(set) != 1 || set.ReplaceFor("keyword") != "Plumber" {
		t.Errorf("set = %+v", set)
	}
}

func TestSet_UnmarshalJSON_RejectsScalar(t *testing.T) {
	var set Set
	if err := json.Unmarshal([]byte(`"nope"`), &set); err == nil {
		t.Error("expected error for scalar replacements")
	}
}

func TestSet_UnmarshalYAML(t *testing.T) {
	want := Set{
		{Label: "location", Find: "[location]", Replace: "Austin"},
		{Label: "keyword", Find: "[keyword]", Replace: "Plumber"},
	}

	mapping := "location:\n  find: \"[location]\"\n  replace: Austin\nkeyword:\n  find: \"[keyword]\"\n  replace: Plumber\n"
	var fromMap Set
	if err := yaml.Unmarshal([]byte(mapping), &fromMap); err != nil {
		t.Fatalf("Unmarshal mapping: %v", err)
	}
	if diff := cmp.Diff(want, fromMap); diff != "" {
		t.Errorf("mapping mismatch (-want +got):\n%s", diff)
	}

	sequence := "- label: location\n  find: \"[location]\"\n  replace: Austin\n- label: keyword\n  find: \"[keyword]\"\n  replace: Plumber\n"
	var fromSeq Set
	if err := yaml.Unmarshal([]byte(sequence), &fromSeq); err != nil {
		t.Fatalf("Unmarshal sequence: %v", err)
	}
	if diff := cmp.Diff(want, fromSeq); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}

	var scalar Set
	if err := yaml.Unmarshal([]byte(`nope`), &scalar); err == nil {
		t.Error("expected error for scalar replacements")
	}
}
