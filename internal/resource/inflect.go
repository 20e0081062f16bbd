package resource

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Singularize turns a plural route segment into its singular form.
// It covers the regular English plurals used by route names.
func Singularize(word string) string {
	lower := strings.ToLower(word)
	switch {
	case strings.HasSuffix(lower, "ies") && len(lower) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(lower, "sses"),
		strings.HasSuffix(lower, "xes"),
		strings.HasSuffix(lower, "ches"),
		strings.HasSuffix(lower, "shes"):
		return word[:len(word)-2]
	case strings.HasSuffix(lower, "ss"):
		return word
	case strings.HasSuffix(lower, "s") && len(lower) > 1:
		return word[:len(word)-1]
	}
	return word
}

// Camelize converts snake_case to CamelCase.
func Camelize(word string) string {
	parts := strings.FieldsFunc(word, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	caser := cases.Title(language.English)
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(caser.String(part))
	}
	return b.String()
}

// TypeName derives the entity type name of a route segment, e.g. "accounts" -> "Account".
func TypeName(segment string) string {
	return Camelize(Singularize(segment))
}
