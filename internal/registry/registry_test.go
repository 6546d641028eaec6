package registry_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/emendhq/emend/internal/catalog"
	"github.com/emendhq/emend/internal/extraction"
	"github.com/emendhq/emend/internal/registry"
)

func ptr(s string) *string { return &s }

func sampleGroups() []extraction.Group {
	return []extraction.Group{
		{
			Precursor: ptr("A train leaves the station at 40 mph."),
			Questions: []string{
				"How far does it travel in 2 hours?",
				"When does it pass the 100 mile mark?",
			},
		},
		{
			Questions: []string{"Define kinetic energy."},
		},
	}
}

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}
	return registry.New(cat, sampleGroups())
}

func TestParseItemID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tests := []struct {
			input string
			want  registry.ItemID
		}{
			{"precursor-0", registry.PrecursorID(0)},
			{"precursor-12", registry.PrecursorID(12)},
			{"question-2-1", registry.QuestionID(2, 1)},
			{"question-0-0", registry.QuestionID(0, 0)},
		}

		for _, tt := range tests {
			t.Run(tt.input, func(t *testing.T) {
				id, err := registry.ParseItemID(tt.input)
				if err != nil {
					t.Fatalf("ParseItemID(%q) error = %v", tt.input, err)
				}
				if id != tt.want {
					t.Errorf("ParseItemID(%q) = %+v, want %+v", tt.input, id, tt.want)
				}
				if id.String() != tt.input {
					t.Errorf("round trip = %q, want %q", id.String(), tt.input)
				}
			})
		}
	})

	t.Run("invalid", func(t *testing.T) {
		inputs := []string{
			"",
			"precursor",
			"precursor-x",
			"precursor--1",
			"precursor-0-0",
			"question-0",
			"question-a-b",
			"answer-0-0",
		}

		for _, input := range inputs {
			t.Run(input, func(t *testing.T) {
				if _, err := registry.ParseItemID(input); !errors.Is(err, registry.ErrInvalidItemID) {
					t.Errorf("ParseItemID(%q) error = %v, want ErrInvalidItemID", input, err)
				}
			})
		}
	})
}

func TestNew(t *testing.T) {
	r := newRegistry(t)

	if r.Len() != 4 {
		t.Errorf("Len() = %d, want 4", r.Len())
	}

	t.Run("precursor numbering follows group", func(t *testing.T) {
		s, err := r.Get(registry.PrecursorID(0))
		if err != nil {
			t.Fatalf("Get error = %v", err)
		}
		if s.Number != 1 {
			t.Errorf("number = %d, want 1", s.Number)
		}
	})

	t.Run("question numbering resets per group", func(t *testing.T) {
		s, err := r.Get(registry.QuestionID(1, 0))
		if err != nil {
			t.Fatalf("Get error = %v", err)
		}
		if s.Number != 1 {
			t.Errorf("number = %d, want 1", s.Number)
		}

		s, err = r.Get(registry.QuestionID(0, 1))
		if err != nil {
			t.Fatalf("Get error = %v", err)
		}
		if s.Number != 2 {
			t.Errorf("number = %d, want 2", s.Number)
		}
	})

	t.Run("no precursor entry for bare group", func(t *testing.T) {
		if _, err := r.Get(registry.PrecursorID(1)); !errors.Is(err, registry.ErrUnknownItem) {
			t.Errorf("error = %v, want ErrUnknownItem", err)
		}
	})

	t.Run("initial state is editable and empty", func(t *testing.T) {
		s, err := r.Get(registry.QuestionID(0, 0))
		if err != nil {
			t.Fatalf("Get error = %v", err)
		}
		if s.Locked || len(s.SelectedTags) != 0 || s.Preview != nil {
			t.Errorf("unexpected initial state: %+v", s)
		}
	})
}

func TestSelectTag(t *testing.T) {
	id := registry.QuestionID(0, 0)

	t.Run("add", func(t *testing.T) {
		r := newRegistry(t)
		if err := r.SelectTag(id, "simplify", true); err != nil {
			t.Fatalf("SelectTag error = %v", err)
		}

		s, _ := r.Get(id)
		if len(s.SelectedTags) != 1 || s.SelectedTags[0] != "simplify" {
			t.Errorf("tags = %v, want [simplify]", s.SelectedTags)
		}
	})

	t.Run("duplicate add is a no-op", func(t *testing.T) {
		r := newRegistry(t)
		r.SelectTag(id, "simplify", true)
		if err := r.SelectTag(id, "simplify", true); err != nil {
			t.Fatalf("SelectTag error = %v", err)
		}

		s, _ := r.Get(id)
		if len(s.SelectedTags) != 1 {
			t.Errorf("tags = %v, want single entry", s.SelectedTags)
		}
	})

	t.Run("conflicting tag rejected", func(t *testing.T) {
		r := newRegistry(t)
		r.SelectTag(id, "simplify", true)

		err := r.SelectTag(id, "advance", true)
		if !errors.Is(err, registry.ErrTagConflict) {
			t.Fatalf("error = %v, want ErrTagConflict", err)
		}

		s, _ := r.Get(id)
		if len(s.SelectedTags) != 1 {
			t.Errorf("tags = %v, selection should be untouched", s.SelectedTags)
		}
	})

	t.Run("unknown tag rejected", func(t *testing.T) {
		r := newRegistry(t)
		if err := r.SelectTag(id, "nonexistent", true); !errors.Is(err, catalog.ErrTagNotFound) {
			t.Errorf("error = %v, want ErrTagNotFound", err)
		}
	})

	t.Run("remove", func(t *testing.T) {
		r := newRegistry(t)
		r.SelectTag(id, "simplify", true)
		r.SelectTag(id, "shorten", true)

		if err := r.SelectTag(id, "simplify", false); err != nil {
			t.Fatalf("SelectTag error = %v", err)
		}

		s, _ := r.Get(id)
		if len(s.SelectedTags) != 1 || s.SelectedTags[0] != "shorten" {
			t.Errorf("tags = %v, want [shorten]", s.SelectedTags)
		}
	})

	t.Run("remove absent tag is a no-op", func(t *testing.T) {
		r := newRegistry(t)
		if err := r.SelectTag(id, "simplify", false); err != nil {
			t.Errorf("SelectTag error = %v", err)
		}
	})

	t.Run("mutation clears preview", func(t *testing.T) {
		r := newRegistry(t)
		r.SetPreview(id, "a rewritten question")
		if err := r.SelectTag(id, "simplify", true); err != nil {
			t.Fatalf("SelectTag error = %v", err)
		}

		s, _ := r.Get(id)
		if s.Preview != nil {
			t.Errorf("preview = %q, want cleared", *s.Preview)
		}
	})

	t.Run("removing conflicting tag frees its peer", func(t *testing.T) {
		r := newRegistry(t)
		r.SelectTag(id, "simplify", true)
		r.SelectTag(id, "simplify", false)

		if err := r.SelectTag(id, "advance", true); err != nil {
			t.Errorf("SelectTag error = %v", err)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		r := newRegistry(t)
		if err := r.SelectTag(registry.QuestionID(9, 9), "simplify", true); !errors.Is(err, registry.ErrUnknownItem) {
			t.Errorf("error = %v, want ErrUnknownItem", err)
		}
	})
}

func TestLocking(t *testing.T) {
	id := registry.QuestionID(0, 0)

	t.Run("toggle flips lock and preserves state", func(t *testing.T) {
		r := newRegistry(t)
		r.SelectTag(id, "simplify", true)
		r.SetPreview(id, "simplified text")

		s, err := r.ToggleLock(id)
		if err != nil {
			t.Fatalf("ToggleLock error = %v", err)
		}
		if !s.Locked {
			t.Error("expected locked")
		}
		if len(s.SelectedTags) != 1 || s.Preview == nil || *s.Preview != "simplified text" {
			t.Errorf("lock altered state: %+v", s)
		}

		s, err = r.ToggleLock(id)
		if err != nil {
			t.Fatalf("ToggleLock error = %v", err)
		}
		if s.Locked {
			t.Error("expected unlocked")
		}
		if s.Preview == nil || *s.Preview != "simplified text" {
			t.Error("unlock should not clear preview")
		}
	})

	t.Run("locked item rejects tag changes", func(t *testing.T) {
		r := newRegistry(t)
		r.ToggleLock(id)

		if err := r.SelectTag(id, "simplify", true); !errors.Is(err, registry.ErrLocked) {
			t.Errorf("error = %v, want ErrLocked", err)
		}
	})

	t.Run("locked item rejects preview writes", func(t *testing.T) {
		r := newRegistry(t)
		r.ToggleLock(id)

		if err := r.SetPreview(id, "late response"); !errors.Is(err, registry.ErrLocked) {
			t.Errorf("error = %v, want ErrLocked", err)
		}

		r.ToggleLock(id)
		s, _ := r.Get(id)
		if s.Preview != nil {
			t.Errorf("preview = %q, want nil", *s.Preview)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		r := newRegistry(t)
		if _, err := r.ToggleLock(registry.PrecursorID(7)); !errors.Is(err, registry.ErrUnknownItem) {
			t.Errorf("error = %v, want ErrUnknownItem", err)
		}
	})
}

func TestSnapshot(t *testing.T) {
	r := newRegistry(t)
	id := registry.QuestionID(0, 0)
	r.SelectTag(id, "simplify", true)

	snap := r.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("snapshot size = %d, want 4", len(snap))
	}

	// Mutating the snapshot must not leak into the registry.
	s := snap[id]
	s.SelectedTags[0] = "mutated"

	current, _ := r.Get(id)
	if current.SelectedTags[0] != "simplify" {
		t.Errorf("registry state mutated through snapshot: %v", current.SelectedTags)
	}
}

func TestSelectable(t *testing.T) {
	r := newRegistry(t)
	id := registry.QuestionID(0, 0)
	r.SelectTag(id, "simplify", true)

	tests := []struct {
		name  string
		tagID string
		want  bool
	}{
		{"non-conflicting", "shorten", true},
		{"conflicting", "advance", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Selectable(id, tt.tagID)
			if err != nil {
				t.Fatalf("Selectable error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Selectable(%q) = %v, want %v", tt.tagID, got, tt.want)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown item", registry.ErrUnknownItem, http.StatusNotFound},
		{"invalid id", registry.ErrInvalidItemID, http.StatusBadRequest},
		{"locked", registry.ErrLocked, http.StatusConflict},
		{"tag conflict", registry.ErrTagConflict, http.StatusConflict},
		{"wrapped", errors.Join(errors.New("ctx"), registry.ErrLocked), http.StatusConflict},
		{"unrecognized", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := registry.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
