package catalog

import (
	"log/slog"
	"net/http"

	"github.com/emendhq/emend/pkg/handlers"
	"github.com/emendhq/emend/pkg/routes"
)

// Handler provides HTTP endpoints for catalog lookups.
type Handler struct {
	catalog *Catalog
	logger  *slog.Logger
}

// NewHandler creates a Handler with the given catalog and logger.
func NewHandler(catalog *Catalog, logger *slog.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger.With("handler", "catalog"),
	}
}

// Routes returns the route group definition for catalog endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/tags",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/categories/{id}", Handler: h.FindCategory},
		},
	}
}

// List returns all tags in catalog definition order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.catalog.Tags())
}

// Find returns a single tag by its id path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	tag, err := h.catalog.GetTag(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, tag)
}

// FindCategory returns a single category by its id path parameter.
func (h *Handler) FindCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := h.catalog.GetCategory(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cat)
}
