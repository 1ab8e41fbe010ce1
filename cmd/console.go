package cmd

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
)

var (
	errorStyle   = ansi.ColorFunc("red+b")
	keywordStyle = ansi.ColorFunc("magenta+b")
	commentStyle = ansi.ColorFunc("black+h")

	pythonKeyword = regexp.MustCompile(`\b(class|True|False|None)\b`)
)

// PrintError writes err to w, in bold red when w is a terminal.
func PrintError(w io.Writer, err error) {
	msg := "Error: " + err.Error()
	if isTerminal(w) {
		msg = errorStyle(msg)
	}
	fmt.Fprintln(w, msg)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// highlight styles Python keywords in generated code for terminal output.
func highlight(w io.Writer, code string) string {
	if !isTerminal(w) {
		return code
	}
	return pythonKeyword.ReplaceAllStringFunc(code, keywordStyle)
}

// comment styles a "# ..." header line for terminal output.
func comment(w io.Writer, line string) string {
	if !isTerminal(w) {
		return line
	}
	return commentStyle(line)
}
