package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/djgen/djgen/internal/config"
	"github.com/djgen/djgen/internal/fieldtype"
)

func TestPrintTypes(t *testing.T) {
	var buf bytes.Buffer
	if err := printTypes(&buf, fieldtype.Builtin()); err != nil {
		t.Fatalf("printTypes failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"  0. BigIntegerField\n",
		"  3. CharField (max_length: int = 250)\n",
		"ForeignKey (to (required), on_delete: str = CASCADE)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintErrorPlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, errors.New("boom"))
	if got := buf.String(); got != "Error: boom\n" {
		t.Errorf("PrintError wrote %q", got)
	}
}

func TestHighlightPlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	code := "class A(models.Model):\n"
	if got := highlight(&buf, code); got != code {
		t.Errorf("highlight changed non-terminal output: %q", got)
	}
}

func TestApplyFlags(t *testing.T) {
	defer func() {
		flagPython, flagDjangoSettings, flagFormatter, flagNoFormat = "", "", "", false
	}()

	cfg := config.Default()
	flagPython = "python3.12"
	flagDjangoSettings = "site.settings"
	flagNoFormat = true
	applyFlags(cfg)

	if cfg.Python != "python3.12" || cfg.Settings != "site.settings" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.FormatterCommand() != "" {
		t.Errorf("--no-format should disable formatting, got %q", cfg.FormatterCommand())
	}
}

func TestCommandErrorsPrintedOnce(t *testing.T) {
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"types", "extra"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	if err := Execute(); err == nil {
		t.Fatal("expected an error for an unexpected argument")
	}
	if stderr.Len() != 0 || stdout.Len() != 0 {
		t.Errorf("cobra should leave error reporting to main, got stdout %q stderr %q", stdout.String(), stderr.String())
	}
}
