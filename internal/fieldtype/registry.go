package fieldtype

import (
	"fmt"
	"strings"
)

// UnknownTypeError is returned by Lookup when a tag was never registered.
type UnknownTypeError struct {
	Tag        string
	Suggestion string
}

func (e *UnknownTypeError) Error() string {
	msg := fmt.Sprintf("unknown field type %q", e.Tag)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(". Did you mean %q?", e.Suggestion)
	}
	return msg
}

// Registry maps field type tags to their specs. It is filled once at
// startup and only read afterwards.
type Registry struct {
	specs map[string]Spec
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]Spec)}
}

// Register adds a copy of spec under spec.Tag. Registering a tag twice
// replaces the earlier spec but keeps its position in Tags.
func (r *Registry) Register(spec Spec) {
	if _, ok := r.specs[spec.Tag]; !ok {
		r.order = append(r.order, spec.Tag)
	}
	r.specs[spec.Tag] = spec.clone()
}

// Lookup returns a copy of the spec registered for tag; changing it does
// not affect the registry.
func (r *Registry) Lookup(tag string) (Spec, error) {
	spec, ok := r.specs[tag]
	if !ok {
		return Spec{}, &UnknownTypeError{Tag: tag, Suggestion: r.suggest(tag)}
	}
	return spec.clone(), nil
}

// Tags returns every registered tag in registration order.
func (r *Registry) Tags() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// suggest returns the closest tag when the edit distance is <= 3. Matching
// is case-insensitive so "charfield" still finds CharField.
func (r *Registry) suggest(tag string) string {
	bestDist := -1
	best := ""
	lower := strings.ToLower(tag)
	for _, t := range r.order {
		d := levenshtein(lower, strings.ToLower(t))
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = t
		}
	}
	if bestDist >= 0 && bestDist <= 3 {
		return best
	}
	return ""
}
