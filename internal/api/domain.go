package api

import (
	"fmt"

	"github.com/emendhq/emend/internal/catalog"
	"github.com/emendhq/emend/internal/documents"
	"github.com/emendhq/emend/internal/modification"
	"github.com/emendhq/emend/internal/sessions"
	"github.com/emendhq/emend/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Catalog   *catalog.Catalog
	Documents documents.System
	Sessions  sessions.System
}

// NewDomain creates all domain systems from the API runtime. The tag
// catalog loads from its embedded definition; the session system is wired
// with the workflow-backed extractor and the agent-backed rewriter.
func NewDomain(runtime *Runtime) (*Domain, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load tag catalog: %w", err)
	}

	docsSystem := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	extractor := workflow.NewExtractor(&workflow.Runtime{
		Agent:     runtime.Agent,
		Converter: runtime.Converter,
		Documents: docsSystem,
		Logger:    runtime.Logger,
	})

	orchestrator := modification.New(
		cat,
		modification.NewRewriter(&runtime.Agent),
		runtime.Logger,
	)

	sessionsSystem := sessions.New(
		cat,
		orchestrator,
		extractor,
		docsSystem,
		runtime.Storage,
		runtime.Logger,
	)

	return &Domain{
		Catalog:   cat,
		Documents: docsSystem,
		Sessions:  sessionsSystem,
	}, nil
}
