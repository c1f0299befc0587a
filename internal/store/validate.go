package store

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrSlugInvalid is returned when a slug does not match the required pattern.
	ErrSlugInvalid = errors.New("slug must match [a-z0-9][a-z0-9-]*[a-z0-9]")

	// ErrInvalidStatus is returned when a status is not one of draft, publish.
	ErrInvalidStatus = errors.New("status must be one of: draft, publish")

	slugRe      = regexp.MustCompile(`^[a-z0-9]([a-z0-9\-]*[a-z0-9])?$`)
	slugStripRe = regexp.MustCompile(`[^a-z0-9-]`)
)

// DeriveSlug derives a URL-safe slug from a title: accents folded,
// lowercase, whitespace/underscores to hyphens, everything outside
// [a-z0-9-] dropped, hyphen runs collapsed.
func DeriveSlug(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}
	s := strings.ToLower(strings.TrimSpace(folded))
	s = strings.Join(strings.Fields(s), "-")
	s = strings.ReplaceAll(s, "_", "-")
	s = slugStripRe.ReplaceAllString(s, "")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// ValidateSlugFormat checks that slug conforms to the required format.
// Uniqueness is handled by DocumentStore.Create.
func ValidateSlugFormat(slug string) error {
	if !slugRe.MatchString(slug) {
		return ErrSlugInvalid
	}
	return nil
}

// ValidateStatus checks that status is one of the allowed document statuses.
func ValidateStatus(status string) error {
	switch status {
	case StatusDraft, StatusPublish:
		return nil
	default:
		return ErrInvalidStatus
	}
}
