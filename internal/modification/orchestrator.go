// Package modification implements the tag selection, preview generation,
// and lock transitions that drive the interactive modification workflow.
package modification

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/emendhq/emend/internal/catalog"
	"github.com/emendhq/emend/internal/prompts"
	"github.com/emendhq/emend/internal/registry"
)

// Orchestrator mediates all mutations of a run's item registry: tag
// selection (gated by the catalog's conflict rules), preview generation
// against the external rewriting service, and per-item lock transitions.
// Operations on distinct items are independent; preview requests for the
// same item within the same scope are collapsed to a single in-flight call.
type Orchestrator struct {
	catalog  *catalog.Catalog
	rewriter Rewriter
	logger   *slog.Logger
	flight   singleflight.Group
}

// New creates an Orchestrator with the given catalog and rewriter.
func New(cat *catalog.Catalog, rewriter Rewriter, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		catalog:  cat,
		rewriter: rewriter,
		logger:   logger.With("system", "modification"),
	}
}

// SelectTag adds or removes a tag on the item. Conflict and lock rules are
// enforced by the registry at commit time; any successful change clears the
// item's preview.
func (o *Orchestrator) SelectTag(reg *registry.Registry, id registry.ItemID, tagID string, selected bool) error {
	if err := reg.SelectTag(id, tagID, selected); err != nil {
		return err
	}

	o.logger.Debug("tag selection changed", "item", id, "tag", tagID, "selected", selected)
	return nil
}

// RequestPreview generates candidate replacement text for the item and
// stores it as the preview.
//
// With no tags selected the original text becomes the preview verbatim and
// no external call is made. Otherwise the selected tags are resolved against
// the catalog, a rewrite prompt is composed, and the service's response is
// stored unmodified. On failure the item's state is untouched and the error
// is returned for the caller to surface; the operation is safe to retry.
//
// scope isolates single-flight keys between registries so concurrent runs
// never collapse each other's requests. A request completing after the item
// was locked is discarded by the registry's lock rule.
func (o *Orchestrator) RequestPreview(ctx context.Context, scope string, reg *registry.Registry, id registry.ItemID, original string) (string, error) {
	state, err := reg.Get(id)
	if err != nil {
		return "", err
	}
	if state.Locked {
		return "", fmt.Errorf("%w: %s", registry.ErrLocked, id)
	}

	if len(state.SelectedTags) == 0 {
		if err := reg.SetPreview(id, original); err != nil {
			return "", err
		}
		return original, nil
	}

	tags := make([]catalog.Tag, 0, len(state.SelectedTags))
	for _, tagID := range state.SelectedTags {
		tag, err := o.catalog.GetTag(tagID)
		if err != nil {
			return "", err
		}
		tags = append(tags, tag)
	}

	prompt := prompts.ComposeModify(tags, original, id.Kind == registry.KindPrecursor)

	key := scope + ":" + id.String()
	text, err, shared := o.flight.Do(key, func() (any, error) {
		return o.rewriter.Rewrite(ctx, prompt)
	})
	if err != nil {
		o.logger.Warn("rewrite failed", "item", id, "error", err)
		return "", fmt.Errorf("%w: %w", ErrRewriteFailed, err)
	}

	preview := text.(string)
	if err := reg.SetPreview(id, preview); err != nil {
		return "", err
	}

	o.logger.Info("preview generated", "item", id, "tags", state.SelectedTags, "shared", shared)
	return preview, nil
}

// ToggleLock flips the item's lock flag and returns the resulting state.
func (o *Orchestrator) ToggleLock(reg *registry.Registry, id registry.ItemID) (registry.State, error) {
	state, err := reg.ToggleLock(id)
	if err != nil {
		return registry.State{}, err
	}

	o.logger.Debug("lock toggled", "item", id, "locked", state.Locked)
	return state, nil
}
