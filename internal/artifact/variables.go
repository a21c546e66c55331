package artifact

import "sort"

// Variables is the set of variable names declared by a specification.
// The set is produced by an external static-analysis step and consumed
// opaquely: this module never interprets a variable name.
type Variables struct {
	Names []string `json:"names"`
}

// NewVariables builds a Variables artifact from an unordered set of names,
// sorting them so the artifact serializes deterministically.
func NewVariables(names []string) Variables {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return Variables{Names: sorted}
}

// Len returns the number of variables.
func (v Variables) Len() int { return len(v.Names) }

// Contains reports whether name is one of the declared variables.
func (v Variables) Contains(name string) bool {
	for _, n := range v.Names {
		if n == name {
			return true
		}
	}
	return false
}
