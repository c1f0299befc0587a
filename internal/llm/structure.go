package llm

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/joestump/pagegen/internal/errcode"
)

// requiredElements must each appear at least once in synthesized content.
var requiredElements = []string{"h1", "h2", "p"}

// ValidateStructure returns a content_structure error naming the required
// elements missing from content.
func ValidateStructure(content string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return errcode.Wrap(errcode.ContentStructure, err, "generated content is not parseable HTML")
	}
	var missing []string
	for _, sel := range requiredElements {
		if doc.Find(sel).Length() == 0 {
			missing = append(missing, sel)
		}
	}
	if len(missing) > 0 {
		return errcode.New(errcode.ContentStructure, "generated content is missing required elements: %s", strings.Join(missing, ", "))
	}
	return nil
}
