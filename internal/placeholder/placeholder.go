// Package placeholder implements literal find/replace substitution over
// document fields.
//
// Pairs are applied in order and each pair operates on the output of the
// previous one, so a later pair may match text introduced by an earlier
// pair's replacement.
package placeholder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joestump/pagegen/internal/errcode"
	"github.com/joestump/pagegen/internal/store"
)

// Pair is a single literal substitution.
type Pair struct {
	Label   string `json:"label,omitempty" yaml:"label,omitempty"`
	Find    string `json:"find" yaml:"find"`
	Replace string `json:"replace" yaml:"replace"`
}

// Complete reports whether both sides of the pair are set.
func (p Pair) Complete() bool {
	return p.Find != "" && p.Replace != ""
}

// Set is an ordered list of pairs.
type Set []Pair

// Apply runs every complete pair of set over content, in order.
func Apply(content string, set Set) string {
	for _, p := range set {
		if !p.Complete() {
			continue
		}
		content = strings.ReplaceAll(content, p.Find, p.Replace)
	}
	return content
}

// ApplyValue substitutes text metadata values. Structured values are
// returned unchanged.
func ApplyValue(v store.MetaValue, set Set) store.MetaValue {
	if !v.IsText() {
		return v
	}
	return store.TextValue(Apply(v.Text, set))
}

// ApplyStructured substitutes every string leaf of a structured value, the
// way text values are substituted. Map keys are left alone. Text values are
// handled like ApplyValue.
func ApplyStructured(v store.MetaValue, set Set) (store.MetaValue, error) {
	if v.IsText() {
		return ApplyValue(v, set), nil
	}
	if v.IsEmpty() {
		return v, nil
	}
	dec := json.NewDecoder(bytes.NewReader(v.Data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return v, fmt.Errorf("decode structured value: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(applyLeaves(tree, set)); err != nil {
		return v, fmt.Errorf("encode structured value: %w", err)
	}
	return store.MetaValue{Kind: store.MetaStructured, Data: bytes.TrimRight(buf.Bytes(), "\n")}, nil
}

func applyLeaves(node any, set Set) any {
	switch n := node.(type) {
	case string:
		return Apply(n, set)
	case []any:
		for i := range n {
			n[i] = applyLeaves(n[i], set)
		}
		return n
	case map[string]any:
		for k, child := range n {
			n[k] = applyLeaves(child, set)
		}
		return n
	default:
		return node
	}
}

// Validate rejects an empty set and any pair missing its find or replace side.
func (s Set) Validate() error {
	if len(s) == 0 {
		return errcode.New(errcode.MissingFields, "at least one find and replace pair is required")
	}
	for i, p := range s {
		if !p.Complete() {
			label := p.Label
			if label == "" {
				label = fmt.Sprintf("pair %d", i)
			}
			return errcode.New(errcode.MissingFields, "both find and replace values are required for %s", label)
		}
	}
	return nil
}

// Lookup returns the pair with the given label.
func (s Set) Lookup(label string) (Pair, bool) {
	for _, p := range s {
		if p.Label == label {
			return p, true
		}
	}
	return Pair{}, false
}

// ReplaceFor returns the replacement of the pair labelled label, or "".
func (s Set) ReplaceFor(label string) string {
	p, _ := s.Lookup(label)
	return p.Replace
}

// Add appends a pair with the given label.
func (s Set) Add(label, find, replace string) Set {
	return append(s, Pair{Label: label, Find: find, Replace: replace})
}

// UnmarshalJSON accepts either an object keyed by label, read in document
// order, or an array of pairs.
//
//	{"keyword": {"find": "[keyword]", "replace": "Plumber"}, "dynamic_0": {...}}
//	[{"label": "keyword", "find": "[keyword]", "replace": "Plumber"}]
func (s *Set) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = nil
		return nil
	}
	if trimmed[0] == '[' {
		var pairs []Pair
		if err := json.Unmarshal(trimmed, &pairs); err != nil {
			return fmt.Errorf("decode replacement pairs: %w", err)
		}
		*s = pairs
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode replacements: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("replacements must be an object or an array")
	}

	var out Set
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode replacements: %w", err)
		}
		label, _ := keyTok.(string)
		var p Pair
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("decode replacement %q: %w", label, err)
		}
		p.Label = label
		out = append(out, p)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode replacements: %w", err)
	}
	*s = out
	return nil
}

// UnmarshalYAML accepts the same two shapes as UnmarshalJSON. Mapping keys
// keep their document order.
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var pairs []Pair
		if err := node.Decode(&pairs); err != nil {
			return fmt.Errorf("decode replacement pairs: %w", err)
		}
		*s = pairs
		return nil
	case yaml.MappingNode:
		out := make(Set, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			label := node.Content[i].Value
			var p Pair
			if err := node.Content[i+1].Decode(&p); err != nil {
				return fmt.Errorf("decode replacement %q: %w", label, err)
			}
			p.Label = label
			out = append(out, p)
		}
		*s = out
		return nil
	default:
		return fmt.Errorf("replacements must be a mapping or a sequence")
	}
}
