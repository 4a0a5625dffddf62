// Package status provides the canonical status enumerations used across the
// content collections.
//
// Status values gate public visibility: a document is served on public
// endpoints only when its status equals the published/active value for its
// resource. Writes outside the enumeration are rejected by the stores.
package status

// Publication lifecycle used by blogs.
const (
	Draft     = "draft"
	Published = "published"
	Archived  = "archived"
)

// Toggle lifecycle used by banners, services, team members, testimonials
// and clients.
const (
	Active   = "active"
	Inactive = "inactive"
)

// Job posting lifecycle.
const (
	Open   = "open"
	Closed = "closed"
)

// Inbox lifecycle used by enquiries.
const (
	New       = "new"
	Read      = "read"
	Responded = "responded"
)

// Application review lifecycle.
const (
	Reviewed = "reviewed"
	Rejected = "rejected"
)

// User account lifecycle.
const (
	Disabled = "disabled"
)

// IsPublication reports whether s is a valid blog status.
func IsPublication(s string) bool {
	return s == Draft || s == Published || s == Archived
}

// IsToggle reports whether s is a valid active/inactive status.
func IsToggle(s string) bool {
	return s == Active || s == Inactive
}

// IsPosting reports whether s is a valid job posting status.
func IsPosting(s string) bool {
	return s == Open || s == Closed
}

// IsInbox reports whether s is a valid enquiry status.
func IsInbox(s string) bool {
	return s == New || s == Read || s == Responded
}

// IsApplication reports whether s is a valid job application status.
func IsApplication(s string) bool {
	return s == New || s == Reviewed || s == Rejected
}

// IsAccount reports whether s is a valid user account status.
func IsAccount(s string) bool {
	return s == Active || s == Disabled
}
