// Package catalog implements the modification tag catalog for emend.
// It provides the static registry of tags, their display categories, and
// pairwise conflict relationships, loaded once at process start from
// embedded data and treated as read-only for the run's duration.
package catalog

// Example shows a before/after illustration of applying a tag.
type Example struct {
	Original string `json:"original"`
	Modified string `json:"modified"`
}

// Tag is a named modification directive. Conflicts lists the ids of tags
// that are mutually exclusive with this one. Conflict declarations are read
// from the candidate tag's own list only, so the catalog data must declare
// every mutually-exclusive pair from both sides; Load validates this.
type Tag struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Purpose     string   `json:"purpose"`
	Category    string   `json:"category"`
	Conflicts   []string `json:"conflicts"`
	Example     Example  `json:"example"`
}

// Category carries display metadata for a group of related tags.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
