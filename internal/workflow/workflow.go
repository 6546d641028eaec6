package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/emendhq/emend/internal/extraction"
)

// State bag keys shared across pipeline nodes.
const (
	KeyDocumentID = "document_id"
	KeyFilename   = "filename"
	KeyContent    = "content"
	KeyGroups     = "groups"
)

// Result carries the outcome of an extraction pipeline run.
type Result struct {
	DocumentID  uuid.UUID          `json:"document_id"`
	Filename    string             `json:"filename"`
	Groups      []extraction.Group `json:"groups"`
	CompletedAt time.Time          `json:"completed_at"`
}

// Execute runs the extraction pipeline for a single document. It builds the
// state graph (fetch → convert → structure), executes it, and extracts the
// Result from the final state.
func Execute(ctx context.Context, rt *Runtime, documentID uuid.UUID) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyDocumentID, documentID)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("emend-extract")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("fetch", FetchNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("convert", ConvertNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("structure", StructureNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("fetch", "convert", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("convert", "structure", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("fetch"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("structure"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	docIDVal, ok := s.Get(KeyDocumentID)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyDocumentID)
	}

	documentID, ok := docIDVal.(uuid.UUID)
	if !ok {
		return nil, fmt.Errorf("%s is not uuid.UUID", KeyDocumentID)
	}

	filenameVal, ok := s.Get(KeyFilename)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyFilename)
	}

	filename, ok := filenameVal.(string)
	if !ok {
		return nil, fmt.Errorf("%s is not string", KeyFilename)
	}

	groupsVal, ok := s.Get(KeyGroups)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyGroups)
	}

	groups, ok := groupsVal.([]extraction.Group)
	if !ok {
		return nil, fmt.Errorf("%s is not []extraction.Group", KeyGroups)
	}

	return &Result{
		DocumentID:  documentID,
		Filename:    filename,
		Groups:      groups,
		CompletedAt: time.Now(),
	}, nil
}
