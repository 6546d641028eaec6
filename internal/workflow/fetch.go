package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// FetchNode returns a state node that loads the document record and its
// stored bytes from blob storage, placing the raw content and filename in
// the workflow state bag.
func FetchNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		documentID, err := extractDocumentID(s)
		if err != nil {
			return s, fmt.Errorf("fetch: %w", err)
		}

		doc, data, err := rt.Documents.Content(ctx, documentID)
		if err != nil {
			return s, fmt.Errorf("fetch: %w: %w", ErrDocumentNotFound, err)
		}

		rt.Logger.InfoContext(
			ctx, "fetch node complete",
			"document_id", documentID,
			"filename", doc.Filename,
			"bytes", len(data),
		)

		s = s.Set(KeyFilename, doc.Filename)
		s = s.Set(KeyContent, data)

		return s, nil
	})
}

func extractDocumentID(s state.State) (uuid.UUID, error) {
	docIDVal, ok := s.Get(KeyDocumentID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: missing %s in state", ErrDocumentNotFound, KeyDocumentID)
	}

	documentID, ok := docIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s is not uuid.UUID", ErrDocumentNotFound, KeyDocumentID)
	}

	return documentID, nil
}
