package modification

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Rewriter produces replacement text for a composed modification prompt.
// Implementations are non-deterministic; callers get no exactly-once or
// stability guarantee across calls with the same prompt.
type Rewriter interface {
	Rewrite(ctx context.Context, prompt string) (string, error)
}

type agentRewriter struct {
	cfg *gaconfig.AgentConfig
}

// NewRewriter creates a Rewriter backed by a go-agents chat agent.
func NewRewriter(cfg *gaconfig.AgentConfig) Rewriter {
	return &agentRewriter{cfg: cfg}
}

func (r *agentRewriter) Rewrite(ctx context.Context, prompt string) (string, error) {
	a, err := agent.New(r.cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}

	return resp.Text(), nil
}
