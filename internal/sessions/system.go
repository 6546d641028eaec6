package sessions

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emendhq/emend/internal/assembly"
	"github.com/emendhq/emend/internal/catalog"
	"github.com/emendhq/emend/internal/documents"
	"github.com/emendhq/emend/internal/extraction"
	"github.com/emendhq/emend/internal/modification"
	"github.com/emendhq/emend/internal/registry"
	"github.com/emendhq/emend/pkg/storage"
)

// Extractor produces question groups for a stored document. The production
// implementation runs the workflow pipeline; tests substitute fakes.
type Extractor interface {
	Extract(ctx context.Context, documentID uuid.UUID) ([]extraction.Group, error)
}

// System defines the public contract for session domain operations.
type System interface {
	Handler() *Handler

	Create(ctx context.Context, documentID uuid.UUID) (View, error)
	Find(ctx context.Context, id uuid.UUID) (View, error)
	Delete(ctx context.Context, id uuid.UUID) error

	SelectTag(ctx context.Context, id uuid.UUID, item, tagID string, selected bool) (ItemView, error)
	Preview(ctx context.Context, id uuid.UUID, item string) (ItemView, error)
	ToggleLock(ctx context.Context, id uuid.UUID, item string) (ItemView, error)

	Assemble(ctx context.Context, id uuid.UUID) (*assembly.Artifact, error)
	Artifact(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
}

type system struct {
	store        *Store
	catalog      *catalog.Catalog
	orchestrator *modification.Orchestrator
	extractor    Extractor
	documents    documents.System
	storage      storage.System
	logger       *slog.Logger
}

// New creates a session system wiring the extraction pipeline, the
// modification orchestrator, and blob storage for assembled artifacts.
func New(
	cat *catalog.Catalog,
	orchestrator *modification.Orchestrator,
	extractor Extractor,
	docs documents.System,
	store storage.System,
	logger *slog.Logger,
) System {
	return &system{
		store:        NewStore(),
		catalog:      cat,
		orchestrator: orchestrator,
		extractor:    extractor,
		documents:    docs,
		storage:      store,
		logger:       logger.With("system", "sessions"),
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *system) Create(ctx context.Context, documentID uuid.UUID) (View, error) {
	groups, err := s.extractor.Extract(ctx, documentID)
	if err != nil {
		return View{}, fmt.Errorf("extract document %s: %w", documentID, err)
	}

	session := &Session{
		ID:         uuid.New(),
		DocumentID: documentID,
		Groups:     groups,
		Registry:   registry.New(s.catalog, groups),
		CreatedAt:  time.Now(),
	}

	s.store.Put(session)

	if err := s.documents.MarkStatus(ctx, documentID, documents.StatusExtracted); err != nil {
		s.logger.Warn("failed to mark document extracted", "document_id", documentID, "error", err)
	}

	s.logger.Info(
		"session created",
		"session_id", session.ID,
		"document_id", documentID,
		"group_count", len(groups),
		"item_count", session.Registry.Len(),
	)

	return session.View()
}

func (s *system) Find(_ context.Context, id uuid.UUID) (View, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return View{}, err
	}
	return session.View()
}

func (s *system) Delete(_ context.Context, id uuid.UUID) error {
	return s.store.Delete(id)
}

func (s *system) SelectTag(_ context.Context, id uuid.UUID, item, tagID string, selected bool) (ItemView, error) {
	session, itemID, err := s.resolve(id, item)
	if err != nil {
		return ItemView{}, err
	}

	if err := s.orchestrator.SelectTag(session.Registry, itemID, tagID, selected); err != nil {
		return ItemView{}, err
	}

	return s.itemView(session, itemID)
}

func (s *system) Preview(ctx context.Context, id uuid.UUID, item string) (ItemView, error) {
	session, itemID, err := s.resolve(id, item)
	if err != nil {
		return ItemView{}, err
	}

	original, err := session.Original(itemID)
	if err != nil {
		return ItemView{}, err
	}

	if _, err := s.orchestrator.RequestPreview(ctx, session.ID.String(), session.Registry, itemID, original); err != nil {
		return ItemView{}, err
	}

	return s.itemView(session, itemID)
}

func (s *system) ToggleLock(_ context.Context, id uuid.UUID, item string) (ItemView, error) {
	session, itemID, err := s.resolve(id, item)
	if err != nil {
		return ItemView{}, err
	}

	if _, err := s.orchestrator.ToggleLock(session.Registry, itemID); err != nil {
		return ItemView{}, err
	}

	return s.itemView(session, itemID)
}

func (s *system) Assemble(ctx context.Context, id uuid.UUID) (*assembly.Artifact, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	artifact := assembly.Assemble(session.Groups, session.Registry)
	key := artifactKey(session.ID)

	if err := s.storage.Upload(ctx, key, strings.NewReader(artifact.Content), "text/markdown"); err != nil {
		return nil, fmt.Errorf("upload artifact: %w", err)
	}

	session.SetArtifact(&artifact, key)

	s.logger.Info(
		"session assembled",
		"session_id", session.ID,
		"item_count", len(artifact.Items),
		"bytes", len(artifact.Content),
	)

	return &artifact, nil
}

func (s *system) Artifact(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	key, ok := session.ArtifactKey()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoArtifact, id)
	}

	blob, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("download artifact: %w", err)
	}

	return blob, nil
}

func (s *system) resolve(id uuid.UUID, item string) (*Session, registry.ItemID, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, registry.ItemID{}, err
	}

	itemID, err := registry.ParseItemID(item)
	if err != nil {
		return nil, registry.ItemID{}, err
	}

	return session, itemID, nil
}

func (s *system) itemView(session *Session, id registry.ItemID) (ItemView, error) {
	st, err := session.Registry.Get(id)
	if err != nil {
		return ItemView{}, err
	}

	original, err := session.Original(id)
	if err != nil {
		return ItemView{}, err
	}

	return ItemView{
		ID:           id.String(),
		Kind:         string(id.Kind),
		Group:        id.Group,
		Number:       st.Number,
		Original:     original,
		SelectedTags: st.SelectedTags,
		Locked:       st.Locked,
		Preview:      st.Preview,
	}, nil
}

func artifactKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("artifacts/%s.md", sessionID)
}
