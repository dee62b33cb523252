// Package normalize implements the per-value cleanup rules applied while
// shaping map elements into rows. Every normalizer is a pure function of
// its input: malformed values never fail, they pass through or get
// truncated.
package normalize

import (
	"strings"
)

// StreetName expands abbreviated street suffixes ("Main St NW" ->
// "Main Street Northwest"). The table is scanned in order; an entry whose
// expansion is already present short-circuits the scan, which also makes
// the function idempotent.
func (r *Rules) StreetName(name string) string {
	for _, repl := range r.Street {
		if strings.Contains(name, repl.Full) {
			return name
		}
		if strings.Contains(name, repl.Abbr) {
			name = strings.ReplaceAll(name, repl.Abbr, repl.Full)
		}
	}
	return name
}

// Phone reduces a phone value to at most MaxLen digits. Known malformed
// literals (vanity numbers, missing area codes) map directly to their
// corrected number.
func (r *Rules) Phone(value string) string {
	if fixed, ok := r.Phones.Corrections[value]; ok {
		return fixed
	}
	for _, s := range r.Phones.Strip {
		value = strings.ReplaceAll(value, s, "")
	}
	if len(value) > r.Phones.MaxLen {
		value = value[:r.Phones.MaxLen]
	}
	return value
}

// Postcode forces postal codes to the configured length. Known malformed
// literals map to their corrected code; anything else is truncated or
// zero-padded on the left.
func (r *Rules) Postcode(value string) string {
	if fixed, ok := r.Postcodes.Corrections[value]; ok {
		return fixed
	}
	if value == "" {
		return value
	}
	if len(value) > r.Postcodes.Length {
		return value[:r.Postcodes.Length]
	}
	for len(value) < r.Postcodes.Length {
		value = "0" + value
	}
	return value
}

// County drops a trailing state abbreviation from single-county values
// ("Cook, IL" -> "Cook"). Multi-county values (containing ':' or ';')
// pass through untouched.
func County(value string) string {
	if !strings.ContainsAny(value, ":;") {
		if i := strings.Index(value, ","); i >= 0 {
			return value[:i]
		}
	}
	return value
}

// PharmacyName strips separators, spaces, and the literal word
// "Pharmacy"/"pharmacy" from pharmacy names ("CVS/pharmacy - Main St" ->
// "CVSMainSt"). The match is case-sensitive on those two spellings only.
func PharmacyName(value string) string {
	for _, s := range []string{"/", "-", "Pharmacy", "pharmacy", " "} {
		value = strings.ReplaceAll(value, s, "")
	}
	return value
}
