// Package sessions implements the modification session domain: each session
// binds an extracted document's question groups to a live item registry so
// clients can tag, preview, lock, and finally assemble the modified document.
package sessions

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emendhq/emend/internal/assembly"
	"github.com/emendhq/emend/internal/extraction"
	"github.com/emendhq/emend/internal/registry"
)

// Session holds the working state for one document modification run.
// Groups and CreatedAt are immutable after creation; the Registry carries its
// own lock; the assembled artifact is guarded here since Assemble writes it
// while other requests read it.
type Session struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	Groups     []extraction.Group
	Registry   *registry.Registry
	CreatedAt  time.Time

	mu          sync.RWMutex
	artifact    *assembly.Artifact
	artifactKey string
}

// SetArtifact records the assembled artifact and its storage key,
// replacing any prior assembly.
func (s *Session) SetArtifact(artifact *assembly.Artifact, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifact = artifact
	s.artifactKey = key
}

// Assembled reports whether the session has an assembled artifact.
func (s *Session) Assembled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.artifact != nil
}

// ArtifactKey returns the artifact's blob storage key. ok is false until
// the session has been assembled.
func (s *Session) ArtifactKey() (key string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.artifactKey, s.artifact != nil
}

// Original resolves the source text for an item from the session's
// extracted groups.
func (s *Session) Original(id registry.ItemID) (string, error) {
	if id.Group < 0 || id.Group >= len(s.Groups) {
		return "", fmt.Errorf("%w: %s", registry.ErrUnknownItem, id)
	}

	group := s.Groups[id.Group]

	switch id.Kind {
	case registry.KindPrecursor:
		if group.Precursor == nil {
			return "", fmt.Errorf("%w: %s", registry.ErrUnknownItem, id)
		}
		return *group.Precursor, nil
	case registry.KindQuestion:
		if id.Question < 0 || id.Question >= len(group.Questions) {
			return "", fmt.Errorf("%w: %s", registry.ErrUnknownItem, id)
		}
		return group.Questions[id.Question], nil
	}

	return "", fmt.Errorf("%w: %s", registry.ErrUnknownItem, id)
}

// ItemView is the serialized form of a single modifiable item.
type ItemView struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Group        int      `json:"group"`
	Number       int      `json:"number"`
	Original     string   `json:"original"`
	SelectedTags []string `json:"selected_tags"`
	Locked       bool     `json:"locked"`
	Preview      *string  `json:"preview"`
}

// View is the serialized form of a session returned to clients.
type View struct {
	ID         uuid.UUID  `json:"id"`
	DocumentID uuid.UUID  `json:"document_id"`
	GroupCount int        `json:"group_count"`
	Items      []ItemView `json:"items"`
	Assembled  bool       `json:"assembled"`
	CreatedAt  time.Time  `json:"created_at"`
}

// View builds the client representation of the session. Items appear in
// document order: each group's precursor (when present) followed by its
// questions.
func (s *Session) View() (View, error) {
	items := make([]ItemView, 0, extraction.ItemCount(s.Groups))

	appendItem := func(id registry.ItemID) error {
		st, err := s.Registry.Get(id)
		if err != nil {
			return err
		}

		original, err := s.Original(id)
		if err != nil {
			return err
		}

		items = append(items, ItemView{
			ID:           id.String(),
			Kind:         string(id.Kind),
			Group:        id.Group,
			Number:       st.Number,
			Original:     original,
			SelectedTags: st.SelectedTags,
			Locked:       st.Locked,
			Preview:      st.Preview,
		})
		return nil
	}

	for g, group := range s.Groups {
		if group.HasPrecursor() {
			if err := appendItem(registry.PrecursorID(g)); err != nil {
				return View{}, err
			}
		}
		for q := range group.Questions {
			if err := appendItem(registry.QuestionID(g, q)); err != nil {
				return View{}, err
			}
		}
	}

	return View{
		ID:         s.ID,
		DocumentID: s.DocumentID,
		GroupCount: len(s.Groups),
		Items:      items,
		Assembled:  s.Assembled(),
		CreatedAt:  s.CreatedAt,
	}, nil
}
