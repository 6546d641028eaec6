package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// ConvertNode returns a state node that sends the raw document bytes to the
// extraction service and replaces the content in the state bag with the
// returned markdown.
func ConvertNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		filename, data, err := extractConvertState(s)
		if err != nil {
			return s, fmt.Errorf("convert: %w", err)
		}

		markdown, err := rt.Converter.Convert(ctx, filename, data)
		if err != nil {
			return s, fmt.Errorf("convert: %w: %w", ErrConvertFailed, err)
		}

		if strings.TrimSpace(markdown) == "" {
			return s, fmt.Errorf("convert: %w: empty markdown", ErrConvertFailed)
		}

		rt.Logger.InfoContext(
			ctx, "convert node complete",
			"filename", filename,
			"markdown_bytes", len(markdown),
		)

		s = s.Set(KeyContent, markdown)
		return s, nil
	})
}

func extractConvertState(s state.State) (string, []byte, error) {
	filenameVal, ok := s.Get(KeyFilename)
	if !ok {
		return "", nil, fmt.Errorf("%w: missing %s in state", ErrConvertFailed, KeyFilename)
	}

	filename, ok := filenameVal.(string)
	if !ok {
		return "", nil, fmt.Errorf("%w: %s is not string", ErrConvertFailed, KeyFilename)
	}

	dataVal, ok := s.Get(KeyContent)
	if !ok {
		return "", nil, fmt.Errorf("%w: missing %s in state", ErrConvertFailed, KeyContent)
	}

	data, ok := dataVal.([]byte)
	if !ok {
		return "", nil, fmt.Errorf("%w: %s is not []byte", ErrConvertFailed, KeyContent)
	}

	return filename, data, nil
}
