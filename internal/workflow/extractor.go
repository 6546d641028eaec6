package workflow

import (
	"context"

	"github.com/google/uuid"

	"github.com/emendhq/emend/internal/extraction"
)

// Extractor adapts the pipeline to the session domain's extraction contract.
type Extractor struct {
	rt *Runtime
}

// NewExtractor creates an Extractor bound to the given runtime.
func NewExtractor(rt *Runtime) *Extractor {
	return &Extractor{rt: rt}
}

// Extract runs the full pipeline and returns the structured question groups.
func (e *Extractor) Extract(ctx context.Context, documentID uuid.UUID) ([]extraction.Group, error) {
	result, err := Execute(ctx, e.rt, documentID)
	if err != nil {
		return nil, err
	}
	return result.Groups, nil
}
