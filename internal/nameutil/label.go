package nameutil

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// VerboseName turns a model class name into the human-readable label Django
// shows in the admin: "BlogPost" → "Blog Post".
func VerboseName(model string) string {
	return strings.Join(SplitWords(model), " ")
}

// VerboseNamePlural pluralizes the last word of VerboseName:
// "BlogCategory" → "Blog Categories".
func VerboseNamePlural(model string) string {
	words := SplitWords(model)
	if len(words) == 0 {
		return ""
	}
	last := len(words) - 1
	words[last] = inflect.Pluralize(words[last])
	return strings.Join(words, " ")
}
