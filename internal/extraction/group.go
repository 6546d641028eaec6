// Package extraction defines the extracted document structure and the
// boundary client for the external content-extraction service.
package extraction

// Group is one contiguous unit from the source document: an optional shared
// context block (precursor) followed by its ordered questions. Groups are
// produced once per workflow run and are immutable afterwards.
type Group struct {
	Precursor *string  `json:"precursor"`
	Questions []string `json:"questions"`
}

// HasPrecursor reports whether the group carries a non-empty precursor.
func (g Group) HasPrecursor() bool {
	return g.Precursor != nil && *g.Precursor != ""
}

// ItemCount returns the total number of extractable items across groups:
// one per non-null precursor plus one per question.
func ItemCount(groups []Group) int {
	count := 0
	for _, g := range groups {
		if g.HasPrecursor() {
			count++
		}
		count += len(g.Questions)
	}
	return count
}
