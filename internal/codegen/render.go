package codegen

import (
	"fmt"
	"strings"

	"github.com/djgen/djgen/internal/fielddef"
	"github.com/djgen/djgen/internal/nameutil"
)

const indent = "    "

// ModelSpec describes one model to generate.
type ModelSpec struct {
	App      string                // Django app label (e.g., "blog")
	Model    string                // Class name (e.g., "BlogPost")
	Ordering string                // Optional Meta.ordering, comma-separated
	Fields   []fielddef.Definition // Field definitions in output order
}

// RenderField returns one model attribute line:
// `name = models.Tag(arg1, arg2)`.
func RenderField(name, tag string, args []string) string {
	return fmt.Sprintf("%s = models.%s(%s)", name, tag, strings.Join(args, ", "))
}

// Assemble builds the class source for spec from already rendered field
// lines. The result always ends with a newline.
func Assemble(spec ModelSpec, fieldLines []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "class %s(models.Model):\n", spec.Model)
	b.WriteString(indent + "class Meta:\n")
	fmt.Fprintf(&b, "%[1]s%[1]sverbose_name = %[2]s\n", indent, quote(nameutil.VerboseName(spec.Model)))
	fmt.Fprintf(&b, "%[1]s%[1]sverbose_name_plural = %[2]s\n", indent, quote(nameutil.VerboseNamePlural(spec.Model)))
	if ordering := orderingList(spec.Ordering); ordering != "" {
		fmt.Fprintf(&b, "%[1]s%[1]sordering = %[2]s\n", indent, ordering)
	}

	if len(fieldLines) > 0 {
		b.WriteString("\n")
	}
	for _, line := range fieldLines {
		b.WriteString(indent + line + "\n")
	}
	return b.String()
}

// orderingList turns "-created, title" into `["-created", "title"]`.
// Returns "" when no column is named.
func orderingList(raw string) string {
	var cols []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cols = append(cols, quote(c))
		}
	}
	if len(cols) == 0 {
		return ""
	}
	return "[" + strings.Join(cols, ", ") + "]"
}

// quote renders s as a double-quoted Python string literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
