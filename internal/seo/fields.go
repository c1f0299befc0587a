package seo

// Plugin names an SEO plugin whose metadata keys are recognized.
type Plugin struct {
	Name        string
	Title       string
	Description string
	Keyword     string
	Canonical   string
}

// Plugins is the registry of recognized SEO plugins. Order matters: when
// several description fields already carry a value the first one wins.
var Plugins = []Plugin{
	{
		Name:        "yoast",
		Title:       "_yoast_wpseo_title",
		Description: "_yoast_wpseo_metadesc",
		Keyword:     "_yoast_wpseo_focuskw",
		Canonical:   "_yoast_wpseo_canonical",
	},
	{
		Name:        "rank_math",
		Title:       "rank_math_title",
		Description: "rank_math_description",
		Keyword:     "rank_math_focus_keyword",
		Canonical:   "rank_math_canonical_url",
	},
	{
		Name:        "aioseo",
		Title:       "_aioseo_title",
		Description: "_aioseo_description",
		Keyword:     "_aioseo_keywords",
		Canonical:   "_aioseo_canonical_url",
	},
	{
		Name:        "seopress",
		Title:       "_seopress_titles_title",
		Description: "_seopress_titles_desc",
		Keyword:     "_seopress_analysis_target_kw",
		Canonical:   "_seopress_robots_canonical",
	},
}

var fieldKeys = func() map[string]bool {
	m := make(map[string]bool)
	for _, p := range Plugins {
		for _, k := range []string{p.Title, p.Description, p.Keyword, p.Canonical} {
			m[k] = true
		}
	}
	return m
}()

// IsField reports whether key belongs to a recognized SEO plugin.
func IsField(key string) bool { return fieldKeys[key] }

// DescriptionKeys returns the description key of every plugin in registry order.
func DescriptionKeys() []string {
	keys := make([]string, len(Plugins))
	for i, p := range Plugins {
		keys[i] = p.Description
	}
	return keys
}
