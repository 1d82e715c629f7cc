// Package money parses and formats Brazilian Real currency strings as the
// checklist form uses them ("R$ 3.000,50"). Amounts are plain float64
// values; the engine only compares them against rule bounds, so no
// arbitrary-precision arithmetic is involved.
package money

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBRL converts a Brazilian-formatted currency string to its numeric
// value. The "R$" prefix, whitespace and thousands separators ("." ) are
// stripped and the decimal comma becomes a decimal point. Plain numeric
// strings ("3000.50") are accepted as-is.
//
// An empty or unparseable input yields 0 — the form treats missing income
// as zero and lets the fail-closed evaluation policy do the rest.
func ParseBRL(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)

	if strings.Contains(s, ",") {
		// Brazilian notation: "." separates thousands, "," the decimals.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return value
}

// FormatBRL renders an amount in Brazilian notation with the "R$" prefix,
// e.g. 3000.5 → "R$ 3.000,50".
func FormatBRL(value float64) string {
	neg := value < 0
	if neg {
		value = -value
	}

	whole := fmt.Sprintf("%.2f", value)
	intPart, decPart, _ := strings.Cut(whole, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := "R$ " + strings.Join(groups, ".") + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}
