package api

import (
	"net/http"

	"github.com/emendhq/emend/internal/catalog"
	"github.com/emendhq/emend/internal/config"
	"github.com/emendhq/emend/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Documents.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Sessions.Handler().Routes(),
		catalog.NewHandler(domain.Catalog, runtime.Logger).Routes(),
	)
}
