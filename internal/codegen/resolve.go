package codegen

import (
	"strings"

	"github.com/djgen/djgen/internal/fieldtype"
)

// Resolve validates the raw arguments of one field against spec and returns
// the rendered argument fragments in first-seen key order.
//
// Rules:
//   - A bare keyword takes its rendered form from the format table and must
//     be a flag (a template without a value).
//   - key=value splits on the first '='; a repeated key keeps its first
//     position and its last value.
//   - Required arguments are enforced in declaration order: a bare one must
//     be present, a typed one is defaulted when absent and converted.
//   - Every key must have a format rule; value keys substitute their value.
//     Quoted templates escape it, unquoted ones reject line breaks.
func Resolve(spec fieldtype.Spec, field string, args []string) ([]string, error) {
	var order []string
	values := make(map[string]string, len(args))
	// Flags resolved from bare keywords are already rendered.
	flags := make(map[string]bool)

	set := func(key, value string, flag bool) {
		if _, seen := values[key]; !seen {
			order = append(order, key)
		}
		values[key] = value
		flags[key] = flag
	}

	for _, arg := range args {
		key, value, hasValue := strings.Cut(arg, "=")
		if hasValue {
			set(key, value, false)
			continue
		}

		format, ok := spec.Format(key)
		if !ok {
			return nil, &UnsupportedArgumentError{Field: field, Type: spec.Tag, Arg: key}
		}
		if fieldtype.TakesValue(format) {
			return nil, &UnsupportedArgumentError{Field: field, Type: spec.Tag, Arg: key, Reason: "expected " + key + "=<value>"}
		}
		set(key, format, true)
	}

	for _, req := range spec.Required {
		value, ok := values[req.Name]
		if !req.Typed {
			if !ok {
				return nil, &MissingArgumentError{Field: field, Type: spec.Tag, Arg: req.Name}
			}
			continue
		}

		if !ok {
			value = req.Default
			set(req.Name, value, false)
		}
		converted, err := req.Kind.Convert(value)
		if err != nil {
			return nil, &TypeMismatchError{Field: field, Arg: req.Name, Kind: req.Kind, Value: value}
		}
		values[req.Name] = converted
	}

	rendered := make([]string, 0, len(order))
	for _, key := range order {
		if flags[key] {
			rendered = append(rendered, values[key])
			continue
		}
		format, ok := spec.Format(key)
		if !ok {
			return nil, &UnsupportedArgumentError{Field: field, Type: spec.Tag, Arg: key}
		}
		if !fieldtype.TakesValue(format) {
			return nil, &UnsupportedArgumentError{Field: field, Type: spec.Tag, Arg: key, Reason: "takes no value, use " + key + " alone"}
		}
		if !fieldtype.Quoted(format) && strings.ContainsAny(values[key], "\r\n") {
			return nil, &UnsupportedArgumentError{Field: field, Type: spec.Tag, Arg: key, Reason: "value must be a single line"}
		}
		rendered = append(rendered, fieldtype.Apply(format, values[key]))
	}
	return rendered, nil
}
