package api

import (
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/emendhq/emend/internal/config"
	"github.com/emendhq/emend/internal/extraction"
	"github.com/emendhq/emend/internal/infrastructure"
	"github.com/emendhq/emend/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration and the
// extraction service client.
type Runtime struct {
	*infrastructure.Infrastructure
	Agent      gaconfig.AgentConfig
	Converter  extraction.Converter
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	logger := infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Agent:      cfg.Agent,
		Converter:  extraction.NewClient(&cfg.Extractor, logger),
		Pagination: cfg.API.Pagination,
	}
}
