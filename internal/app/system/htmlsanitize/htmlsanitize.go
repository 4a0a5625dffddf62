// Package htmlsanitize cleans rich-text content fields before they are
// persisted. It uses bluemonday to strip dangerous HTML while preserving the
// formatting the admin editor produces.
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()

		// Rich-text editors emit tables and extra inline formatting.
		policy.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
		policy.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
		policy.AllowElements("u", "s", "sub", "sup", "mark")
		policy.AllowAttrs("class").OnElements("table", "th", "td", "tr")
	})
	return policy
}

// Sanitize removes dangerous elements and attributes from html, keeping safe
// formatting (bold, italic, lists, links, tables).
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}
