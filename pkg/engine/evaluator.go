package engine

import (
	"fmt"
	"math"
	"strings"

	"fincheck/docmatrix/pkg/catalog"
)

// EvaluateConditions reports whether every condition in the set is
// satisfied by the given attributes. The set is a pure conjunction, so the
// result is order-independent and the scan short-circuits on the first
// failing condition.
//
// A "does not match" outcome is never an error. The only caller-visible
// error is a requirement with an unknown kind, which cannot occur for
// catalogs built by catalog.Load.
func EvaluateConditions(conditions map[string]catalog.Requirement, attrs Attributes) (bool, error) {
	for field, req := range conditions {
		value, ok := attrs[field]
		if !ok || value == nil {
			// Fail-closed: an absent attribute never satisfies a condition.
			return false, nil
		}

		switch req.Kind {
		case catalog.KindRange:
			if !satisfiesRange(req, value) {
				return false, nil
			}

		case catalog.KindSet:
			if !satisfiesSet(req, value) {
				return false, nil
			}

		default:
			return false, fmt.Errorf("field %q: requirement has unknown kind %d", field, req.Kind)
		}
	}

	return true, nil
}

// satisfiesRange checks a numeric range requirement. The value must be a
// finite number and fall within every bound present (inclusive).
func satisfiesRange(req catalog.Requirement, value any) bool {
	n, ok := toFloat64(value)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return false
	}
	if req.Min != nil && n < *req.Min {
		return false
	}
	if req.Max != nil && n > *req.Max {
		return false
	}
	return true
}

// satisfiesSet checks a set-membership requirement. Comparison is exact
// string equality on lower-cased values; a non-string attribute never
// matches. Values carrying a leading "!" marker from the source data are
// compared literally and therefore never match an unprefixed attribute.
func satisfiesSet(req catalog.Requirement, value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	s = strings.ToLower(s)

	for _, candidate := range req.Values {
		if strings.ToLower(candidate) == s {
			return true
		}
	}
	return false
}

// toFloat64 converts the numeric types an attribute map may carry.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
