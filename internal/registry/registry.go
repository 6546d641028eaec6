package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/emendhq/emend/internal/catalog"
	"github.com/emendhq/emend/internal/extraction"
)

// State holds the modification state for one extractable item.
//
// SelectedTags preserves insertion order and enforces uniqueness. Preview is
// nil until a preview has been generated; a locked item with a nil preview is
// a valid terminal state meaning "use the original text". While Locked is
// true neither SelectedTags nor Preview may change; unlocking re-enables
// editing without clearing either.
type State struct {
	Number       int      `json:"number"`
	SelectedTags []string `json:"selected_tags"`
	Locked       bool     `json:"locked"`
	Preview      *string  `json:"preview"`
}

// Registry owns all ModificationState entries for the current workflow run.
// Every mutation acquires the registry lock, so read-modify-write sequences
// on a single item are atomic; operations on distinct items are independent.
type Registry struct {
	catalog *catalog.Catalog

	mu    sync.Mutex
	items map[ItemID]*State
	order []ItemID
}

// New creates a Registry with one zero-valued entry per extractable item in
// groups. Display numbering is computed once here from the immutable
// structure: precursors number by group, questions by their within-group
// position.
func New(cat *catalog.Catalog, groups []extraction.Group) *Registry {
	r := &Registry{
		catalog: cat,
		items:   make(map[ItemID]*State),
	}

	for g, group := range groups {
		if group.HasPrecursor() {
			r.add(PrecursorID(g), g+1)
		}
		for q := range group.Questions {
			r.add(QuestionID(g, q), q+1)
		}
	}

	return r
}

func (r *Registry) add(id ItemID, number int) {
	r.items[id] = &State{Number: number, SelectedTags: []string{}}
	r.order = append(r.order, id)
}

// Len returns the number of registered items.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Get returns a copy of the state for the given item.
func (r *Registry) Get(id ItemID) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[id]
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	return copyState(s), nil
}

// Snapshot returns a copy of every item's state keyed by ItemID, in no
// particular order. Callers needing ordering walk the original structure.
func (r *Registry) Snapshot() map[ItemID]State {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[ItemID]State, len(r.items))
	for id, s := range r.items {
		out[id] = copyState(s)
	}
	return out
}

// Selectable reports whether tagID may currently be added to the item's
// selection. Recomputed on every call since the selection may have changed.
func (r *Registry) Selectable(id ItemID, tagID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	return r.catalog.Selectable(tagID, s.SelectedTags), nil
}

// SelectTag adds or removes a tag on an unlocked item.
//
// Additions are re-validated at commit time: a tag already present or in
// conflict with the current selection is rejected even if the caller's view
// was stale. Any successful mutation clears the item's preview. Removing an
// absent tag is a silent no-op.
func (r *Registry) SelectTag(id ItemID, tagID string, selected bool) error {
	if _, err := r.catalog.GetTag(tagID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if s.Locked {
		return fmt.Errorf("%w: %s", ErrLocked, id)
	}

	if selected {
		if slices.Contains(s.SelectedTags, tagID) {
			return nil
		}
		if !r.catalog.Selectable(tagID, s.SelectedTags) {
			return fmt.Errorf("%w: %s on %s", ErrTagConflict, tagID, id)
		}
		s.SelectedTags = append(s.SelectedTags, tagID)
	} else {
		i := slices.Index(s.SelectedTags, tagID)
		if i < 0 {
			return nil
		}
		s.SelectedTags = slices.Delete(s.SelectedTags, i, i+1)
	}

	s.Preview = nil
	return nil
}

// SetPreview stores generated preview text for an unlocked item. The text is
// written verbatim, overwriting any prior preview. Locked items reject the
// write so a late rewrite response cannot alter a committed item.
func (r *Registry) SetPreview(id ItemID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if s.Locked {
		return fmt.Errorf("%w: %s", ErrLocked, id)
	}

	s.Preview = &text
	return nil
}

// ToggleLock flips the item's lock flag and returns the resulting state.
// No other field changes; locking with no tags and no preview is valid and
// means "ship the original text".
func (r *Registry) ToggleLock(id ItemID) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[id]
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}

	s.Locked = !s.Locked
	return copyState(s), nil
}

func copyState(s *State) State {
	out := State{
		Number:       s.Number,
		SelectedTags: slices.Clone(s.SelectedTags),
		Locked:       s.Locked,
	}
	if s.Preview != nil {
		preview := *s.Preview
		out.Preview = &preview
	}
	return out
}
