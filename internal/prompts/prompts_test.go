package prompts_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/emendhq/emend/internal/catalog"
	"github.com/emendhq/emend/internal/prompts"
)

func TestComposeStructure(t *testing.T) {
	content := "## Practice Quiz\n\n1. What is 7 x 8?\n2. What is 81 / 9?"
	prompt := prompts.ComposeStructure(content)

	for _, want := range []string{
		"Identify every assessment question",
		`"groups"`,
		"Document content:",
		content,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if !strings.HasSuffix(prompt, content) {
		t.Error("document content should close the prompt")
	}
}

func TestComposeModify(t *testing.T) {
	tags := []catalog.Tag{
		{
			ID:          "simplify",
			Name:        "Simplify",
			Description: "Reduce the difficulty of the item.",
			Purpose:     "Make the item accessible to earlier grade levels.",
		},
		{
			ID:          "rephrase",
			Name:        "Rephrase",
			Description: "Express the item with different wording.",
			Purpose:     "Produce a fresh variant with identical meaning.",
		},
	}
	original := "Solve for x: 3x + 4 = 19."

	t.Run("question", func(t *testing.T) {
		prompt := prompts.ComposeModify(tags, original, false)

		for _, want := range []string{
			"Modify the following question according to these tags:",
			"- Simplify: Reduce the difficulty of the item.\n  Purpose: Make the item accessible to earlier grade levels.",
			"- Rephrase: Express the item with different wording.",
			"Original Question:\n" + original,
			"Important: Preserve the core meaning and educational value.",
			"Return ONLY the modified text, nothing else.",
		} {
			if !strings.Contains(prompt, want) {
				t.Errorf("prompt missing %q:\n%s", want, prompt)
			}
		}
	})

	t.Run("precursor", func(t *testing.T) {
		prompt := prompts.ComposeModify(tags[:1], "Shared context paragraph.", true)

		for _, want := range []string{
			"Modify the following precursor according to these tags:",
			"Original Precursor:\nShared context paragraph.",
			"Important: Keep all critical information intact. Preserve the core meaning and context.",
		} {
			if !strings.Contains(prompt, want) {
				t.Errorf("prompt missing %q:\n%s", want, prompt)
			}
		}
	})

	t.Run("tags separated by newline", func(t *testing.T) {
		prompt := prompts.ComposeModify(tags, original, false)
		if !strings.Contains(prompt, "grade levels.\n- Rephrase:") {
			t.Errorf("tag entries not newline separated:\n%s", prompt)
		}
	})
}

func TestParseStage(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, s := range prompts.Stages() {
			got, err := prompts.ParseStage(string(s))
			if err != nil {
				t.Errorf("ParseStage(%q) error = %v", s, err)
			}
			if got != s {
				t.Errorf("ParseStage(%q) = %q", s, got)
			}
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, s := range []string{"", "extract", "STRUCTURE"} {
			if _, err := prompts.ParseStage(s); !errors.Is(err, prompts.ErrInvalidStage) {
				t.Errorf("ParseStage(%q) error = %v, want ErrInvalidStage", s, err)
			}
		}
	})
}

func TestStageUnmarshalJSON(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var s prompts.Stage
		if err := json.Unmarshal([]byte(`"modify"`), &s); err != nil {
			t.Fatalf("unmarshal error = %v", err)
		}
		if s != prompts.StageModify {
			t.Errorf("stage = %q, want modify", s)
		}
	})

	t.Run("unknown value", func(t *testing.T) {
		var s prompts.Stage
		if err := json.Unmarshal([]byte(`"review"`), &s); !errors.Is(err, prompts.ErrInvalidStage) {
			t.Errorf("error = %v, want ErrInvalidStage", err)
		}
	})

	t.Run("non-string", func(t *testing.T) {
		var s prompts.Stage
		if err := json.Unmarshal([]byte(`42`), &s); err == nil {
			t.Error("expected error for non-string stage")
		}
	})
}
