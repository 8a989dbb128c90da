// Package normalize cleans raw form input into the stored representation of
// each employee field.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/laflopet/Employee-onboarding-system/internal/domain"
)

// Field maps a raw keystroke value to the clean value for field. It never
// fails and never truncates; Field(f, Field(f, v)) == Field(f, v).
func Field(field, raw string) string {
	switch field {
	case domain.FieldPrimerApellido, domain.FieldSegundoApellido, domain.FieldPrimerNombre:
		return keep(upper(raw), false)
	case domain.FieldOtrosNombres:
		return keep(upper(raw), true)
	}
	return raw
}

// Clamp cuts v to the field's length bound, counted in runes. It belongs to
// the form-entry boundary (the equivalent of an input maxlength attribute).
func Clamp(field, v string) string {
	n := domain.MaxLen(field)
	if n == 0 {
		return v
	}
	r := []rune(v)
	if len(r) <= n {
		return v
	}
	return string(r[:n])
}

// upper applies full Unicode case mapping, so "ß" becomes "SS".
// A Caser holds state and is not shared across calls.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

func keep(s string, space bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (space && r == ' ') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
