// Package workflow implements the document extraction pipeline as a state
// graph: fetch the stored document, convert it to markdown through the
// external extraction service, then structure the markdown into question
// groups with a language model.
package workflow

import (
	"log/slog"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/emendhq/emend/internal/documents"
	"github.com/emendhq/emend/internal/extraction"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Agent     gaconfig.AgentConfig
	Converter extraction.Converter
	Documents documents.System
	Logger    *slog.Logger
}
