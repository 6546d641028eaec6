package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/emendhq/emend/internal/extraction"
	"github.com/emendhq/emend/internal/prompts"
	"github.com/emendhq/emend/pkg/formatting"
)

type structureResponse struct {
	Groups []extraction.Group `json:"groups"`
}

// StructureNode returns a state node that asks the language model to
// organize markdown content into question groups. The parsed groups are
// normalized before being stored: whitespace is trimmed, blank questions
// are dropped, and groups left with no questions are discarded.
func StructureNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		markdown, err := extractStructureState(s)
		if err != nil {
			return s, fmt.Errorf("structure: %w", err)
		}

		groups, err := structureContent(ctx, rt, markdown)
		if err != nil {
			return s, fmt.Errorf("structure: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "structure node complete",
			"group_count", len(groups),
			"item_count", extraction.ItemCount(groups),
		)

		s = s.Set(KeyGroups, groups)
		return s, nil
	})
}

func structureContent(ctx context.Context, rt *Runtime, markdown string) ([]extraction.Group, error) {
	a, err := agent.New(&rt.Agent)
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", ErrStructureFailed, err)
	}

	prompt := prompts.ComposeStructure(markdown)

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: chat call: %w", ErrStructureFailed, err)
	}

	parsed, err := formatting.Parse[structureResponse](resp.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %w", ErrStructureFailed, err)
	}

	// Zero groups is a valid outcome: the document simply contained no
	// questions. The session is created with an empty structure and the
	// client restarts from upload.
	return normalizeGroups(parsed.Groups), nil
}

func normalizeGroups(raw []extraction.Group) []extraction.Group {
	groups := make([]extraction.Group, 0, len(raw))

	for _, g := range raw {
		questions := make([]string, 0, len(g.Questions))
		for _, q := range g.Questions {
			if q = strings.TrimSpace(q); q != "" {
				questions = append(questions, q)
			}
		}

		if len(questions) == 0 {
			continue
		}

		group := extraction.Group{Questions: questions}
		if g.Precursor != nil {
			if p := strings.TrimSpace(*g.Precursor); p != "" {
				group.Precursor = &p
			}
		}

		groups = append(groups, group)
	}

	return groups
}

func extractStructureState(s state.State) (string, error) {
	contentVal, ok := s.Get(KeyContent)
	if !ok {
		return "", fmt.Errorf("%w: missing %s in state", ErrStructureFailed, KeyContent)
	}

	markdown, ok := contentVal.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is not string", ErrStructureFailed, KeyContent)
	}

	return markdown, nil
}
