// Package assembly produces the final output artifact from the original
// extracted structure and the run's modification state.
package assembly

import (
	"fmt"
	"strings"
	"time"

	"github.com/emendhq/emend/internal/extraction"
	"github.com/emendhq/emend/internal/registry"
)

// Artifact is the assembled output document. Items lists every emitted item
// text in order; Content is the rendered artifact. Locking is the sole
// commit signal: an item contributes its preview only when it is locked with
// a non-nil preview, otherwise its original text is emitted unchanged.
type Artifact struct {
	Items       []string  `json:"items"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Assemble walks groups in original order and substitutes locked previews
// for originals. Output ordering follows the extracted structure only —
// group order first, precursor before its questions — and every original
// item appears exactly once.
func Assemble(groups []extraction.Group, reg *registry.Registry) Artifact {
	states := reg.Snapshot()

	var items []string
	var sb strings.Builder

	for g, group := range groups {
		if g > 0 {
			sb.WriteString("\n---\n\n")
		}
		fmt.Fprintf(&sb, "## Section %d\n\n", g+1)

		if group.HasPrecursor() {
			text := resolve(states, registry.PrecursorID(g), *group.Precursor)
			items = append(items, text)
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}

		for q, question := range group.Questions {
			text := resolve(states, registry.QuestionID(g, q), question)
			items = append(items, text)
			fmt.Fprintf(&sb, "%d. %s\n", q+1, text)
		}
	}

	return Artifact{
		Items:       items,
		Content:     sb.String(),
		GeneratedAt: time.Now().UTC(),
	}
}

func resolve(states map[registry.ItemID]registry.State, id registry.ItemID, original string) string {
	state, ok := states[id]
	if ok && state.Locked && state.Preview != nil {
		return *state.Preview
	}
	return original
}
