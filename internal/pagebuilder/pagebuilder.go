// Package pagebuilder models the page builders a generated document can
// target. Each builder is a variant in a fixed table: adding a builder means
// adding a row, never editing a switch.
package pagebuilder

import (
	"fmt"
	"strings"
)

// Builder identifies a page builder.
type Builder int

const (
	Generic Builder = iota
	Gutenberg
	Elementor
	Divi
	WPBakery
	Oxygen
	Fusion
)

// MetaFamily lists the metadata keys a builder stores its layout under.
// The family is present on a document when Primary holds a non-empty value.
type MetaFamily struct {
	Primary string
	Keys    []string
}

type variant struct {
	slug    string
	name    string
	aliases []string
	family  MetaFamily
	render  func([]Section) string
	hint    string
}

var variants = [...]variant{
	Generic: {
		slug:   "generic",
		name:   "Classic Editor",
		render: renderPlain,
		hint:   "Use plain semantic HTML with <section> wrappers.",
	},
	Gutenberg: {
		slug:   "gutenberg",
		name:   "Gutenberg",
		render: renderGutenberg,
		hint:   "Wrap every heading, paragraph and list in its Gutenberg block comment (<!-- wp:paragraph --> ... <!-- /wp:paragraph -->).",
	},
	Elementor: {
		slug: "elementor",
		name: "Elementor",
		family: MetaFamily{
			Primary: "_elementor_data",
			Keys: []string{
				"_elementor_data", "_elementor_edit_mode", "_elementor_template_type",
				"_elementor_version", "_elementor_pro_version", "_elementor_page_settings",
				"_elementor_css", "_elementor_page_assets",
			},
		},
		render: renderPlain,
		hint:   "Use plain HTML sections; Elementor stores its layout separately and will import the markup as a text widget.",
	},
	Divi: {
		slug:    "divi",
		name:    "Divi Builder",
		aliases: []string{"divi-builder"},
		family: MetaFamily{
			Primary: "_et_pb_use_builder",
			Keys: []string{
				"_et_pb_use_builder", "_et_pb_old_content", "_et_pb_page_layout",
				"_et_pb_side_nav", "_et_pb_post_hide_nav", "_et_builder_version",
				"_et_pb_built_for_post_type", "_et_pb_ab_subjects",
			},
		},
		render: shortcodeRenderer(`[et_pb_section][et_pb_row][et_pb_column type="4_4"][et_pb_text]`, `[/et_pb_text][/et_pb_column][/et_pb_row][/et_pb_section]`),
		hint:   `Wrap each section in [et_pb_section][et_pb_row][et_pb_column type="4_4"][et_pb_text] ... [/et_pb_text][/et_pb_column][/et_pb_row][/et_pb_section].`,
	},
	WPBakery: {
		slug:    "wpbakery",
		name:    "WPBakery Page Builder",
		aliases: []string{"js_composer", "visual-composer"},
		family: MetaFamily{
			Primary: "_wpb_vc_js_status",
			Keys: []string{
				"_wpb_vc_js_status", "_wpb_shortcodes_custom_css",
				"_wpb_post_custom_css", "_wpb_post_custom_layout",
			},
		},
		render: shortcodeRenderer(`[vc_row][vc_column][vc_column_text]`, `[/vc_column_text][/vc_column][/vc_row]`),
		hint:   "Wrap each section in [vc_row][vc_column][vc_column_text] ... [/vc_column_text][/vc_column][/vc_row].",
	},
	Oxygen: {
		slug: "oxygen",
		name: "Oxygen Builder",
		family: MetaFamily{
			Primary: "ct_builder_shortcodes",
			Keys: []string{
				"ct_builder_shortcodes", "ct_builder_json", "ct_other_template", "ct_page_settings",
			},
		},
		render: renderPlain,
		hint:   "Use plain HTML sections; Oxygen keeps its layout in builder metadata.",
	},
	Fusion: {
		slug:    "fusion",
		name:    "Avada Builder",
		aliases: []string{"fusion-builder", "avada"},
		family: MetaFamily{
			Primary: "fusion_builder_status",
			Keys: []string{
				"fusion_builder_status", "_fusion", "_fusion_builder_custom_css", "fusion_builder_converted",
			},
		},
		render: shortcodeRenderer(`[fusion_builder_container][fusion_builder_row][fusion_builder_column type="1_1"][fusion_text]`, `[/fusion_text][/fusion_builder_column][/fusion_builder_row][/fusion_builder_container]`),
		hint:   `Wrap each section in [fusion_builder_container][fusion_builder_row][fusion_builder_column type="1_1"][fusion_text] ... [/fusion_text][/fusion_builder_column][/fusion_builder_row][/fusion_builder_container].`,
	},
}

// All returns every builder in declaration order.
func All() []Builder {
	out := make([]Builder, len(variants))
	for i := range variants {
		out[i] = Builder(i)
	}
	return out
}

// Parse resolves a builder slug or alias. The empty string is Generic.
func Parse(s string) (Builder, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Generic, nil
	}
	for i, v := range variants {
		if v.slug == s {
			return Builder(i), nil
		}
		for _, a := range v.aliases {
			if a == s {
				return Builder(i), nil
			}
		}
	}
	return Generic, fmt.Errorf("unknown page builder %q", s)
}

func (b Builder) valid() bool { return b >= 0 && int(b) < len(variants) }

func (b Builder) v() variant {
	if !b.valid() {
		return variants[Generic]
	}
	return variants[b]
}

// String returns the canonical slug.
func (b Builder) String() string { return b.v().slug }

// Name returns the human-readable builder name.
func (b Builder) Name() string { return b.v().name }

// Family returns the builder's metadata key family. Builders that keep their
// layout in the body return a zero MetaFamily.
func (b Builder) Family() MetaFamily { return b.v().family }

// PromptHint describes the builder's markup conventions for the LLM.
func (b Builder) PromptHint() string { return b.v().hint }

// Render formats sections as a document body for the builder.
func (b Builder) Render(sections []Section) string { return b.v().render(sections) }

// MarshalText encodes the builder as its slug.
func (b Builder) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText decodes a slug or alias.
func (b *Builder) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Families returns the metadata key families of every builder that has one.
func Families() []MetaFamily {
	var out []MetaFamily
	for _, v := range variants {
		if v.family.Primary != "" {
			out = append(out, v.family)
		}
	}
	return out
}

// FamilyKeys returns the set of every builder metadata key.
func FamilyKeys() map[string]bool {
	keys := make(map[string]bool)
	for _, f := range Families() {
		for _, k := range f.Keys {
			keys[k] = true
		}
	}
	return keys
}
