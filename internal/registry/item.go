// Package registry implements the per-item modification state registry for
// a single workflow run. Each extractable item (a group's precursor or one
// of its questions) owns a ModificationState addressed by a position-derived
// ItemID; entries are created in bulk when the extracted structure becomes
// available and mutated only through the registry's operations.
package registry

import (
	"fmt"
	"strconv"
	"strings"
)

// ItemKind distinguishes the two extractable item variants.
type ItemKind string

// Extractable item kinds.
const (
	KindPrecursor ItemKind = "precursor"
	KindQuestion  ItemKind = "question"
)

// ItemID identifies an extractable item by its position in the extracted
// structure. Position-derived ids stay stable across re-reads and never
// collide for identical text appearing in different groups. Question holds
// the within-group index and is meaningful only for KindQuestion.
type ItemID struct {
	Kind     ItemKind
	Group    int
	Question int
}

// PrecursorID returns the id for group's precursor item.
func PrecursorID(group int) ItemID {
	return ItemID{Kind: KindPrecursor, Group: group}
}

// QuestionID returns the id for the question at the given group and index.
func QuestionID(group, question int) ItemID {
	return ItemID{Kind: KindQuestion, Group: group, Question: question}
}

// String renders the canonical wire form: "precursor-<g>" or "question-<g>-<q>".
func (id ItemID) String() string {
	switch id.Kind {
	case KindPrecursor:
		return fmt.Sprintf("precursor-%d", id.Group)
	default:
		return fmt.Sprintf("question-%d-%d", id.Group, id.Question)
	}
}

// MarshalText renders the canonical wire form for JSON map keys.
func (id ItemID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// ParseItemID parses the canonical wire form back into an ItemID.
func ParseItemID(s string) (ItemID, error) {
	parts := strings.Split(s, "-")

	switch {
	case len(parts) == 2 && parts[0] == string(KindPrecursor):
		group, err := parseIndex(parts[1])
		if err != nil {
			return ItemID{}, fmt.Errorf("%w: %s", ErrInvalidItemID, s)
		}
		return PrecursorID(group), nil

	case len(parts) == 3 && parts[0] == string(KindQuestion):
		group, gerr := parseIndex(parts[1])
		question, qerr := parseIndex(parts[2])
		if gerr != nil || qerr != nil {
			return ItemID{}, fmt.Errorf("%w: %s", ErrInvalidItemID, s)
		}
		return QuestionID(group, question), nil

	default:
		return ItemID{}, fmt.Errorf("%w: %s", ErrInvalidItemID, s)
	}
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid index: %s", s)
	}
	return n, nil
}
