package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/djgen/djgen/internal/fieldtype"
	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:           "types",
	Short:         "List the supported field types",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTypes(cmd.OutOrStdout(), fieldtype.Builtin())
	},
}

// printTypes writes the numbered type menu with each type's required
// arguments, e.g. "  3. CharField (max_length: int = 250)".
func printTypes(w io.Writer, registry *fieldtype.Registry) error {
	for i, tag := range registry.Tags() {
		spec, err := registry.Lookup(tag)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("%3d. %s", i, tag)
		if len(spec.Required) > 0 {
			reqs := make([]string, len(spec.Required))
			for j, r := range spec.Required {
				if r.Typed {
					reqs[j] = fmt.Sprintf("%s: %s = %s", r.Name, r.Kind, r.Default)
				} else {
					reqs[j] = r.Name + " (required)"
				}
			}
			line += " (" + strings.Join(reqs, ", ") + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
