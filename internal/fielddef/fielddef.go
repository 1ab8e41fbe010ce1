package fielddef

import (
	"fmt"
	"strings"

	"github.com/djgen/djgen/internal/nameutil"
)

// Definition is one parsed `name:type[:arg]*` field definition.
type Definition struct {
	Name string   // Model attribute name (e.g., "title")
	Type string   // Field type tag (e.g., "CharField")
	Args []string // Raw arguments in input order (e.g., "null", "max_length=80")
}

// MalformedError reports a definition that does not match name:type[:arg]*.
type MalformedError struct {
	Input  string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%q is not a valid field definition: %s", e.Input, e.Reason)
}

// Parse splits every raw definition. The result keeps input order and
// duplicates; the first malformed entry aborts the whole parse.
func Parse(raw []string) ([]Definition, error) {
	defs := make([]Definition, 0, len(raw))
	for _, r := range raw {
		def, err := Split(r)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Split parses a single definition string.
func Split(raw string) (Definition, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 {
		return Definition{}, &MalformedError{Input: raw, Reason: "expected name:type[:arg]*"}
	}

	name, typ := parts[0], parts[1]
	if typ == "" {
		return Definition{}, &MalformedError{Input: raw, Reason: "missing field type"}
	}
	if !nameutil.IsIdentifier(name) {
		return Definition{}, &MalformedError{Input: raw, Reason: fmt.Sprintf("%q is not a valid Python identifier", name)}
	}

	var args []string
	if len(parts) > 2 {
		args = parts[2:]
	}
	return Definition{Name: name, Type: typ, Args: args}, nil
}

// String renders d back into its DSL form.
func (d Definition) String() string {
	return strings.Join(append([]string{d.Name, d.Type}, d.Args...), ":")
}
