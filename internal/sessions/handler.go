package sessions

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/emendhq/emend/pkg/handlers"
	"github.com/emendhq/emend/pkg/routes"
)

// Handler provides HTTP endpoints for session operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// CreateRequest is the body for session creation.
type CreateRequest struct {
	DocumentID uuid.UUID `json:"document_id"`
}

// TagRequest is the body for tag selection on an item.
type TagRequest struct {
	Tag      string `json:"tag"`
	Selected bool   `json:"selected"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "sessions"),
	}
}

// Routes returns the route group definition for session endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/sessions",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
			{Method: "POST", Pattern: "/{id}/items/{item}/tags", Handler: h.SelectTag},
			{Method: "POST", Pattern: "/{id}/items/{item}/preview", Handler: h.Preview},
			{Method: "POST", Pattern: "/{id}/items/{item}/lock", Handler: h.ToggleLock},
			{Method: "POST", Pattern: "/{id}/assemble", Handler: h.Assemble},
			{Method: "GET", Pattern: "/{id}/artifact", Handler: h.Artifact},
		},
	}
}

// Create starts a modification session by running the extraction pipeline
// against an uploaded document.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DocumentID == uuid.Nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	view, err := h.sys.Create(r.Context(), req.DocumentID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, view)
}

// Find returns the session state including every item's tags, lock, and preview.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}

// Delete discards a session and its working state.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SelectTag adds or removes a tag on an item.
func (h *Handler) SelectTag(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Tag == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	item, err := h.sys.SelectTag(r.Context(), id, r.PathValue("item"), req.Tag, req.Selected)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, item)
}

// Preview generates a modified rendition of an item from its selected tags.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	item, err := h.sys.Preview(r.Context(), id, r.PathValue("item"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, item)
}

// ToggleLock flips an item's lock state.
func (h *Handler) ToggleLock(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	item, err := h.sys.ToggleLock(r.Context(), id, r.PathValue("item"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, item)
}

// Assemble produces the final document from locked previews and originals.
func (h *Handler) Assemble(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	artifact, err := h.sys.Assemble(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, artifact)
}

// Artifact streams the assembled markdown document.
func (h *Handler) Artifact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	blob, err := h.sys.Artifact(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer blob.Close()

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	if _, err := io.Copy(w, blob); err != nil {
		h.logger.Warn("artifact stream interrupted", "session_id", id, "error", err)
	}
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return uuid.Nil, false
	}
	return id, true
}
