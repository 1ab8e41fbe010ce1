package fieldtype

import (
	"maps"
	"slices"
	"strings"
)

// valuePlaceholder marks where an argument's value goes in a format template.
// Inside quotedPlaceholder the value is escaped as a Python string literal.
const (
	valuePlaceholder  = "{value}"
	quotedPlaceholder = "'" + valuePlaceholder + "'"
)

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	"'", `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Requirement is one entry of a type's required-argument list. A bare
// requirement must be supplied by the user; a typed one is filled with
// Default when absent and always checked against Kind.
type Requirement struct {
	Name    string
	Typed   bool
	Kind    Kind
	Default string
}

// Bare declares an argument that must be supplied and has no default.
func Bare(name string) Requirement {
	return Requirement{Name: name}
}

// Typed declares an argument converted to kind and defaulted when absent.
func Typed(name string, kind Kind, def string) Requirement {
	return Requirement{Name: name, Typed: true, Kind: kind, Default: def}
}

// Spec holds the generation rules of one Django field type.
type Spec struct {
	Tag      string
	Required []Requirement
	// Formats maps an argument key to its rendered form. A template with
	// "{value}" takes a value (max_length=250); one without is a flag (null).
	Formats map[string]string
}

// clone returns a copy of s that shares no mutable state with it.
func (s Spec) clone() Spec {
	s.Required = slices.Clone(s.Required)
	s.Formats = maps.Clone(s.Formats)
	return s
}

// Format returns the template registered for key.
func (s Spec) Format(key string) (string, bool) {
	f, ok := s.Formats[key]
	return f, ok
}

// TakesValue reports whether a template substitutes a value.
func TakesValue(template string) bool {
	return strings.Contains(template, valuePlaceholder)
}

// Quoted reports whether a template places its value inside a string literal.
func Quoted(template string) bool {
	return strings.Contains(template, quotedPlaceholder)
}

// Apply substitutes value into template. A quoted placeholder ('{value}')
// gets the value escaped so the result stays a single-line Python literal.
func Apply(template, value string) string {
	if Quoted(template) {
		return strings.ReplaceAll(template, quotedPlaceholder, "'"+literalEscaper.Replace(value)+"'")
	}
	return strings.ReplaceAll(template, valuePlaceholder, value)
}
