package model

import "sort"

// Selection maps a category id to the selected asset id.
// An empty asset id means the category has no selection.
type Selection map[string]string

// Clone returns an independent copy
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Get returns the selected asset id for a category and whether one is set
func (s Selection) Get(categoryID string) (string, bool) {
	assetID := s[categoryID]
	return assetID, assetID != ""
}

// Active returns the category ids that have a selection, sorted by id
func (s Selection) Active() []string {
	ids := make([]string, 0, len(s))
	for categoryID, assetID := range s {
		if assetID != "" {
			ids = append(ids, categoryID)
		}
	}
	sort.Strings(ids)
	return ids
}

// Equal reports whether both selections choose the same assets.
// A missing key and an explicit empty value are treated alike.
func (s Selection) Equal(other Selection) bool {
	for k, v := range s {
		if other[k] != v {
			return false
		}
	}
	for k, v := range other {
		if s[k] != v {
			return false
		}
	}
	return true
}
