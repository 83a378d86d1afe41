package model

// ClearPolicy describes what happens when a category's selection is cleared
type ClearPolicy string

const (
	// PolicyOptional means the category may be left empty
	PolicyOptional ClearPolicy = "optional"

	// PolicyDefault means the category is mandatory and clearing it restores its default asset
	PolicyDefault ClearPolicy = "default"

	// PolicyReject means the category is mandatory and clearing it is refused
	PolicyReject ClearPolicy = "reject"
)

// String returns the string representation of ClearPolicy
func (p ClearPolicy) String() string {
	return string(p)
}

// Valid reports whether p is one of the known policies
func (p ClearPolicy) Valid() bool {
	return p == PolicyOptional || p == PolicyDefault || p == PolicyReject
}

// AllowsEmpty returns true if a category with this policy may have no selection
func (p ClearPolicy) AllowsEmpty() bool {
	return p == PolicyOptional
}

// ParseClearPolicy converts a data-file token into a ClearPolicy.
// "mandatory" is accepted as an alias of PolicyDefault.
func ParseClearPolicy(s string) (ClearPolicy, bool) {
	switch s {
	case "", "optional":
		return PolicyOptional, true
	case "default", "mandatory":
		return PolicyDefault, true
	case "reject":
		return PolicyReject, true
	default:
		return "", false
	}
}
