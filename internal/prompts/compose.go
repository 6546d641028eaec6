package prompts

import (
	"fmt"
	"strings"

	"github.com/emendhq/emend/internal/catalog"
)

// ComposeStructure builds the prompt that structures extracted document
// content into question groups.
func ComposeStructure(content string) string {
	var sb strings.Builder
	sb.WriteString(structureInstructions)
	sb.WriteString("\n\n")
	sb.WriteString(structureSpec)
	sb.WriteString("\n\nDocument content:\n\n")
	sb.WriteString(content)
	return sb.String()
}

// ComposeModify builds the rewrite prompt for one item. Each selected tag
// contributes its name, description, and purpose so the model applies the
// directive rather than guessing from the name alone. The preservation note
// depends on whether the item is a precursor or a question.
func ComposeModify(tags []catalog.Tag, original string, precursor bool) string {
	contentType := "question"
	preserveNote := questionPreserveNote
	if precursor {
		contentType = "precursor"
		preserveNote = precursorPreserveNote
	}

	var instructions strings.Builder
	for i, tag := range tags {
		if i > 0 {
			instructions.WriteString("\n")
		}
		fmt.Fprintf(&instructions, "- %s: %s\n  Purpose: %s", tag.Name, tag.Description, tag.Purpose)
	}

	return fmt.Sprintf(`Modify the following %s according to these tags:

%s

Original %s:
%s

Important: %s
Return ONLY the modified text, nothing else.`,
		contentType,
		instructions.String(),
		capitalize(contentType),
		original,
		preserveNote,
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
