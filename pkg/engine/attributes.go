package engine

import (
	"sort"
	"strings"
)

// Attributes holds the applicant-supplied values keyed by vocabulary field
// name. Categorical fields carry a lower-cased string; numeric fields
// (renda) carry a float64. The engine never mutates the map.
type Attributes map[string]any

// SetString stores a categorical value, normalized to lower case.
func (a Attributes) SetString(field, value string) {
	a[field] = strings.ToLower(strings.TrimSpace(value))
}

// SetNumber stores a numeric value.
func (a Attributes) SetNumber(field string, value float64) {
	a[field] = value
}

// FieldNames returns the populated field names in sorted order, for
// logging and display.
func (a Attributes) FieldNames() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
