package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RequirementKind discriminates the two field-requirement variants.
type RequirementKind int

const (
	// KindSet is a set-membership requirement: the applicant's value must
	// be one of the listed strings.
	KindSet RequirementKind = iota + 1

	// KindRange is a numeric range requirement with optional inclusive
	// minimo/maximo bounds.
	KindRange
)

// Requirement is the tagged union of the two condition variants. The
// variant is fixed when the catalog is loaded; any other JSON shape is a
// schema error at load time, so evaluation never has to duck-type.
type Requirement struct {
	Kind RequirementKind

	// Values holds the acceptable values for KindSet, in source order.
	// A value may carry a leading "!" marker inherited from the source
	// data; the evaluator matches such values literally.
	Values []string

	// Min and Max are the inclusive bounds for KindRange. A nil bound is
	// unconstrained.
	Min *float64
	Max *float64
}

// rangeBody mirrors the JSON shape of a numeric range requirement.
type rangeBody struct {
	Min *float64 `json:"minimo,omitempty"`
	Max *float64 `json:"maximo,omitempty"`
}

// UnmarshalJSON decodes either a string array (set membership) or a
// minimo/maximo object (numeric range). Everything else is rejected.
func (r *Requirement) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return fmt.Errorf("empty requirement")
	}

	switch trimmed[0] {
	case '[':
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("requirement list must contain only strings: %w", err)
		}
		*r = Requirement{Kind: KindSet, Values: values}
		return nil

	case '{':
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(data, &keys); err != nil {
			return fmt.Errorf("malformed requirement object: %w", err)
		}
		for k := range keys {
			if k != "minimo" && k != "maximo" {
				return fmt.Errorf("unknown requirement key %q (expected minimo or maximo)", k)
			}
		}

		var body rangeBody
		if err := json.Unmarshal(data, &body); err != nil {
			return fmt.Errorf("minimo/maximo bounds must be numbers: %w", err)
		}
		*r = Requirement{Kind: KindRange, Min: body.Min, Max: body.Max}
		return nil

	default:
		return fmt.Errorf("requirement must be a value list or a minimo/maximo range")
	}
}

// MarshalJSON writes the requirement back in its source shape.
func (r Requirement) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case KindSet:
		values := r.Values
		if values == nil {
			values = []string{}
		}
		return json.Marshal(values)

	case KindRange:
		return json.Marshal(rangeBody{Min: r.Min, Max: r.Max})

	default:
		return nil, fmt.Errorf("cannot marshal requirement with unknown kind %d", r.Kind)
	}
}

// NewSet builds a set-membership requirement.
func NewSet(values ...string) Requirement {
	return Requirement{Kind: KindSet, Values: values}
}

// NewRange builds a numeric range requirement. Pass nil for an
// unconstrained bound.
func NewRange(min, max *float64) Requirement {
	return Requirement{Kind: KindRange, Min: min, Max: max}
}
