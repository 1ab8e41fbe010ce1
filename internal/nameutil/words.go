package nameutil

import "strings"

// SplitWords breaks a CamelCase, camelCase or snake_case name into words.
//
// Rules:
//   - A boundary is inserted before an uppercase letter that follows a
//     lowercase letter or digit ("BlogPost" → "Blog", "Post").
//   - Inside a run of uppercase letters, the last one starts a new word when a
//     lowercase letter follows ("HTTPRequest" → "HTTP", "Request").
//   - Underscores and dashes separate words and are dropped.
func SplitWords(name string) []string {
	var words []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			words = append(words, b.String())
			b.Reset()
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
			continue
		case isUpper(r) && i > 0:
			prev := runes[i-1]
			if isLower(prev) || isDigit(prev) {
				flush()
			} else if isUpper(prev) && i+1 < len(runes) && isLower(runes[i+1]) {
				flush()
			}
		}
		b.WriteRune(r)
	}
	flush()
	return words
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
