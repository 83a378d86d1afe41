// Package character holds the mutable per-document selection bound to a catalog.
package character

import (
	"fmt"

	"github.com/retromoe/stortrooper-editor/internal/catalog"
	"github.com/retromoe/stortrooper-editor/internal/model"
)

// State maps every category of its catalog to a selected asset id or "" for none.
// A State is owned by one document and is not safe for concurrent use.
type State struct {
	catalog   *catalog.Catalog
	selection model.Selection
}

// New creates a state with no selections
func New(c *catalog.Catalog) *State {
	s := &State{
		catalog:   c,
		selection: make(model.Selection, len(c.Categories())),
	}
	for _, cat := range c.Categories() {
		s.selection[cat.ID] = ""
	}
	return s
}

// NewWithDefaults creates a state where every category with a default asset selects it
func NewWithDefaults(c *catalog.Catalog) *State {
	s := New(c)
	for _, cat := range c.Categories() {
		if cat.Default != "" {
			s.selection[cat.ID] = cat.Default
		}
	}
	return s
}

// Catalog returns the catalog the state is bound to
func (s *State) Catalog() *catalog.Catalog {
	return s.catalog
}

// Select makes assetID the only selection of its category
func (s *State) Select(categoryID, assetID string) error {
	if _, err := s.catalog.Asset(categoryID, assetID); err != nil {
		return err
	}
	s.selection[categoryID] = assetID
	return nil
}

// Clear removes the selection of a category according to its clear policy
func (s *State) Clear(categoryID string) error {
	cat, err := s.catalog.Category(categoryID)
	if err != nil {
		return err
	}

	switch cat.Policy {
	case model.PolicyOptional:
		s.selection[categoryID] = ""
	case model.PolicyDefault:
		s.selection[categoryID] = cat.Default
	case model.PolicyReject:
		return fmt.Errorf("%w: %s", ErrMandatoryCategory, categoryID)
	default:
		return fmt.Errorf("category %s has unknown policy %q", categoryID, cat.Policy)
	}
	return nil
}

// Toggle clears the category when assetID is active there and selects it otherwise
func (s *State) Toggle(categoryID, assetID string) error {
	if s.IsActive(categoryID, assetID) {
		return s.Clear(categoryID)
	}
	return s.Select(categoryID, assetID)
}

// IsActive reports whether assetID is the current selection of its category
func (s *State) IsActive(categoryID, assetID string) bool {
	return assetID != "" && s.selection[categoryID] == assetID
}

// Selected returns the asset selected in a category and whether there is one
func (s *State) Selected(categoryID string) (model.Asset, bool) {
	assetID, ok := s.selection.Get(categoryID)
	if !ok {
		return model.Asset{}, false
	}
	asset, err := s.catalog.Asset(categoryID, assetID)
	if err != nil {
		return model.Asset{}, false
	}
	return asset, true
}

// CurrentSelection returns a snapshot holding every category of the catalog
func (s *State) CurrentSelection() model.Selection {
	return s.selection.Clone()
}

// Replace swaps the whole selection. An empty entry in sel leaves its
// category empty; categories missing from sel become empty, or take their
// default asset when they have one. Nothing changes unless every entry is valid.
func (s *State) Replace(sel model.Selection) error {
	next := make(model.Selection, len(s.selection))
	for _, cat := range s.catalog.Categories() {
		next[cat.ID] = ""
		if _, present := sel[cat.ID]; !present && cat.Policy == model.PolicyDefault {
			next[cat.ID] = cat.Default
		}
	}
	for categoryID, assetID := range sel {
		if _, ok := next[categoryID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCategory, categoryID)
		}
		if assetID == "" {
			continue
		}
		if _, err := s.catalog.Asset(categoryID, assetID); err != nil {
			return err
		}
		next[categoryID] = assetID
	}
	s.selection = next
	return nil
}
