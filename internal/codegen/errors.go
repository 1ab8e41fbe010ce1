package codegen

import (
	"fmt"

	"github.com/djgen/djgen/internal/fieldtype"
)

// UnsupportedArgumentError is returned for an argument key the field type
// has no format rule for, or one supplied in the wrong shape.
type UnsupportedArgumentError struct {
	Field  string
	Type   string
	Arg    string
	Reason string
}

func (e *UnsupportedArgumentError) Error() string {
	msg := fmt.Sprintf("field %q: %s does not support argument %q", e.Field, e.Type, e.Arg)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

// MissingArgumentError is returned when a bare required argument is absent.
type MissingArgumentError struct {
	Field string
	Type  string
	Arg   string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("field %q: %s requires argument %q", e.Field, e.Type, e.Arg)
}

// TypeMismatchError is returned when a typed argument cannot be converted.
type TypeMismatchError struct {
	Field string
	Arg   string
	Kind  fieldtype.Kind
	Value string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q: %q should be of type %q, got %q", e.Field, e.Arg, e.Kind, e.Value)
}
