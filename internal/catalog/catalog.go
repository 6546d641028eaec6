package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"slices"
)

//go:embed data/tags.json
var data embed.FS

type catalogFile struct {
	Categories []Category `json:"categories"`
	Tags       []Tag      `json:"tags"`
}

// Catalog is the loaded tag registry. Tags keep catalog definition order;
// conflict relationships are precomputed into an adjacency set at load time.
type Catalog struct {
	tags       []Tag
	tagIndex   map[string]int
	categories map[string]Category
	conflicts  map[string]map[string]bool
}

// Load reads and validates the embedded catalog data. Validation failures
// indicate a data bug and are fatal at startup: duplicate ids, references to
// unknown categories or tags, and asymmetric conflict declarations are all
// rejected.
func Load() (*Catalog, error) {
	raw, err := data.ReadFile("data/tags.json")
	if err != nil {
		return nil, fmt.Errorf("%w: read catalog data: %w", ErrInvalidCatalog, err)
	}

	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: parse catalog data: %w", ErrInvalidCatalog, err)
	}

	return build(file)
}

func build(file catalogFile) (*Catalog, error) {
	c := &Catalog{
		tags:       file.Tags,
		tagIndex:   make(map[string]int, len(file.Tags)),
		categories: make(map[string]Category, len(file.Categories)),
		conflicts:  make(map[string]map[string]bool, len(file.Tags)),
	}

	for _, cat := range file.Categories {
		if _, ok := c.categories[cat.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidCatalog, cat.ID)
		}
		c.categories[cat.ID] = cat
	}

	for i, tag := range file.Tags {
		if _, ok := c.tagIndex[tag.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate tag %q", ErrInvalidCatalog, tag.ID)
		}
		if _, ok := c.categories[tag.Category]; !ok {
			return nil, fmt.Errorf("%w: tag %q references unknown category %q", ErrInvalidCatalog, tag.ID, tag.Category)
		}
		c.tagIndex[tag.ID] = i

		set := make(map[string]bool, len(tag.Conflicts))
		for _, conflict := range tag.Conflicts {
			set[conflict] = true
		}
		c.conflicts[tag.ID] = set
	}

	if err := c.validateConflicts(); err != nil {
		return nil, err
	}

	return c, nil
}

// validateConflicts rejects conflicts naming unknown tags, self-conflicts,
// and one-sided declarations. Selectable only consults the candidate's own
// conflict list, so an asymmetric pair would be enforceable in one selection
// order but not the other.
func (c *Catalog) validateConflicts() error {
	for _, tag := range c.tags {
		for _, conflict := range tag.Conflicts {
			if conflict == tag.ID {
				return fmt.Errorf("%w: tag %q conflicts with itself", ErrInvalidCatalog, tag.ID)
			}
			peer, ok := c.conflicts[conflict]
			if !ok {
				return fmt.Errorf("%w: tag %q conflicts with unknown tag %q", ErrInvalidCatalog, tag.ID, conflict)
			}
			if !peer[tag.ID] {
				return fmt.Errorf("%w: conflict %q <-> %q is declared in one direction only", ErrInvalidCatalog, tag.ID, conflict)
			}
		}
	}
	return nil
}

// Tags returns all tags in catalog definition order.
func (c *Catalog) Tags() []Tag {
	return slices.Clone(c.tags)
}

// GetTag returns the tag with the given id.
func (c *Catalog) GetTag(id string) (Tag, error) {
	i, ok := c.tagIndex[id]
	if !ok {
		return Tag{}, fmt.Errorf("%w: %s", ErrTagNotFound, id)
	}
	return c.tags[i], nil
}

// GetCategory returns the category with the given id.
func (c *Catalog) GetCategory(id string) (Category, error) {
	cat, ok := c.categories[id]
	if !ok {
		return Category{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}
	return cat, nil
}

// Selectable reports whether candidate may join the given selection. It
// returns false when any already-selected tag appears in the candidate's
// declared conflict set. Pure lookup; the caller re-evaluates whenever the
// selection changes.
func (c *Catalog) Selectable(candidate string, selected []string) bool {
	conflicts, ok := c.conflicts[candidate]
	if !ok {
		return false
	}
	for _, id := range selected {
		if conflicts[id] {
			return false
		}
	}
	return true
}
