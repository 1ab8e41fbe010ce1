package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/djgen/djgen/internal/codegen"
	"github.com/djgen/djgen/internal/fielddef"
	"github.com/djgen/djgen/internal/fieldtype"
	"github.com/djgen/djgen/internal/nameutil"
)

// Collector gathers model input interactively. Fields produces the same
// definitions fielddef.Parse does for command-line input.
type Collector struct {
	driver   Driver
	registry *fieldtype.Registry
}

// NewCollector creates a Collector offering the types in registry.
func NewCollector(driver Driver, registry *fieldtype.Registry) *Collector {
	return &Collector{driver: driver, registry: registry}
}

// Ask prompts for a required, non-blank value.
func (c *Collector) Ask(ctx context.Context, message string) (string, error) {
	answer, err := c.driver.Input(ctx, InputConfig{
		Message: message,
		Validator: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("a value is required")
			}
			return nil
		},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Confirm asks a yes/no question.
func (c *Collector) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	return c.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def})
}

// Menu returns the numbered type menu, one entry per registered tag.
func Menu(tags []string) []string {
	options := make([]string, len(tags))
	for i, tag := range tags {
		options[i] = fmt.Sprintf("%d. %s", i, tag)
	}
	return options
}

// Fields loops until an empty field name is entered. For each field it asks
// for a type from the numbered menu and optional colon-separated arguments,
// which are validated before moving on.
func (c *Collector) Fields(ctx context.Context) ([]fielddef.Definition, error) {
	tags := c.registry.Tags()
	menu := Menu(tags)
	var defs []fielddef.Definition

	for {
		name, err := c.driver.Input(ctx, InputConfig{
			Message: "Field name (Empty to continue)",
			Validator: func(s string) error {
				s = strings.TrimSpace(s)
				if s != "" && !nameutil.IsIdentifier(s) {
					return fmt.Errorf("%q is not a valid Python identifier", s)
				}
				return nil
			},
		})
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return defs, nil
		}

		choice, err := c.driver.Select(ctx, SelectConfig{Message: "Pick one", Options: menu, PageSize: 12})
		if err != nil {
			return nil, err
		}
		if choice < 0 || choice >= len(tags) {
			return nil, fmt.Errorf("%d is not a valid choice", choice)
		}
		spec, err := c.registry.Lookup(tags[choice])
		if err != nil {
			return nil, err
		}

		raw, err := c.driver.Input(ctx, InputConfig{
			Message: "Arguments (colon-separated, empty for none)",
			Help:    "e.g. null:blank:max_length=80",
			Validator: func(s string) error {
				_, err := codegen.Resolve(spec, name, splitArgs(s))
				return err
			},
		})
		if err != nil {
			return nil, err
		}

		defs = append(defs, fielddef.Definition{Name: name, Type: spec.Tag, Args: splitArgs(raw)})
	}
}

func splitArgs(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ":")
}
