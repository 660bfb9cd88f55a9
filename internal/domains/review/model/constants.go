package model

const (
	// Sources
	SourceHostaway = "hostaway"
	SourceGoogle   = "google"

	// Review direction
	TypeGuestToHost = "guest-to-host"
	TypeHostToGuest = "host-to-guest"

	// Publication status
	StatusPublished = "published"
	StatusDraft     = "draft"
	StatusHidden    = "hidden"

	// Audit actions
	ActionApproved   = "approved"
	ActionUnapproved = "unapproved"

	// Rating bounds
	MinRating = 0.0
	MaxRating = 10.0

	// Pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Export
	MaxExportRows = 1000
)

// DefaultSort is applied when no sort parameter is given.
const DefaultSort = "submitted_at:desc"

// SortableFields is the allowlist for the sort parameter. Anything outside
// it is a validation error rather than being passed into the query.
var SortableFields = map[string]bool{
	"submitted_at":   true,
	"rating_overall": true,
	"author_name":    true,
	"status":         true,
	"created_at":     true,
}
