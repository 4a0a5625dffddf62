// Package slugify derives URL-safe slugs from titles.
//
// Slug computation is an explicit pure function invoked by handlers before
// the write, so the derivation is visible and testable rather than hidden in
// a persistence hook. Uniqueness is enforced by a unique index on the slug
// field; the stores surface index violations as conflicts.
package slugify

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Make returns the slug for title: folded (lowercase, diacritics stripped),
// with every run of non-alphanumeric characters collapsed to a single
// hyphen and leading/trailing hyphens trimmed.
//
//	Make("Hello World")  == "hello-world"
//	Make("  SEO & You ") == "seo-you"
func Make(title string) string {
	folded := text.Fold(title)

	var b strings.Builder
	b.Grow(len(folded))
	prevHyphen := true // suppresses a leading hyphen
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
