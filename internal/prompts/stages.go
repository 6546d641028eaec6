// Package prompts composes the prompts sent to the language model for the
// two LLM-backed workflow stages: structuring extracted document content
// into question groups, and rewriting an individual item according to its
// selected modification tags.
package prompts

import (
	"encoding/json"
	"slices"
)

// Stage identifies an LLM-backed workflow stage.
type Stage string

// Valid workflow stages.
const (
	StageStructure Stage = "structure"
	StageModify    Stage = "modify"
)

var stages = []Stage{
	StageStructure,
	StageModify,
}

// Stages returns the list of valid workflow stages.
func Stages() []Stage {
	return stages
}

// UnmarshalJSON validates that the decoded string is a known stage value.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Stage(raw)
	if !slices.Contains(stages, v) {
		return ErrInvalidStage
	}
	*s = v
	return nil
}

// ParseStage validates a string as a known workflow stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
