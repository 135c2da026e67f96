package models

import "fmt"

// Category status values derived from the member count.
const (
	CategoryActive = "Active"
	CategoryEmpty  = "Empty"
)

// Visual is presentation-only category metadata the backend does not model.
// It lives in the local store and is overlaid on every fetched record.
type Visual struct {
	IconID     string `json:"iconId"`
	BgClass    string `json:"bgClass"`
	ColorValue string `json:"colorValue"`
}

// DefaultVisual applies to categories without a locally saved visual.
var DefaultVisual = Visual{
	IconID:     "package",
	BgClass:    "bg-gradient-slate",
	ColorValue: "#64748b",
}

// Category is the dashboard view of a category: the backend record plus the
// local visual overlay and derived display fields.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Products    int    `json:"products"`
	Percentage  string `json:"percentage"`
	Status      string `json:"status"`
	Visual
}

// CategoryRecord is the backend representation of a category.
type CategoryRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MemberCount int    `json:"memberCount"`
}

// CategoryFromRecord merges a backend record with a visual overlay.
// totalProducts is the member count across all categories, used for the
// percentage display; pass 0 when unknown.
func CategoryFromRecord(r CategoryRecord, visual Visual, totalProducts int) Category {
	status := CategoryEmpty
	if r.MemberCount > 0 {
		status = CategoryActive
	}
	percentage := "0%"
	if totalProducts > 0 {
		percentage = fmt.Sprintf("%d%%", r.MemberCount*100/totalProducts)
	}
	return Category{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Products:    r.MemberCount,
		Percentage:  percentage,
		Status:      status,
		Visual:      visual,
	}
}

// CategoryInput is the payload for creating or updating a category. Visual
// fields never reach the backend; the provider strips them into the overlay.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IconID      string `json:"iconId,omitempty"`
	BgClass     string `json:"bgClass,omitempty"`
	ColorValue  string `json:"colorValue,omitempty"`
}
