package django

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/djgen/djgen/internal/generator"
	"github.com/kballard/go-shellquote"
)

const modelsImport = "from django.db import models\n"

// Writer appends generated models to an app's models module and then runs
// a code formatter over the file.
type Writer struct {
	Formatter string // Formatter command, shell-quoted; the file path is appended. Empty skips formatting.
	Dir       string // Working directory for the formatter
}

// ModelsPath returns the file generated code is appended to.
func ModelsPath(app *generator.App) string {
	if app.ModelsFile != "" {
		return app.ModelsFile
	}
	return filepath.Join(app.Path, "models.py")
}

// Append implements generator.Writer. The formatter is located before the
// file is touched, so a missing formatter leaves models.py unchanged.
func (w *Writer) Append(ctx context.Context, app *generator.App, text string) error {
	argv, err := w.formatterArgv()
	if err != nil {
		return err
	}

	path := ModelsPath(app)

	info, err := os.Stat(path)
	fresh := os.IsNotExist(err) || (err == nil && info.Size() == 0)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	chunk := "\n\n" + text
	if fresh {
		chunk = modelsImport + chunk
	}
	if _, err := f.WriteString(chunk); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	if len(argv) == 0 {
		return nil
	}
	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Dir = w.Dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("format %s with %s failed: %s\n%s", path, argv[0], err, string(out))
	}
	return nil
}

// formatterArgv splits the formatter command and checks that its program is
// installed. It returns nil when formatting is disabled.
func (w *Writer) formatterArgv() ([]string, error) {
	if w.Formatter == "" {
		return nil, nil
	}
	argv, err := shellquote.Split(w.Formatter)
	if err != nil {
		return nil, fmt.Errorf("invalid formatter command %q: %w", w.Formatter, err)
	}
	if len(argv) == 0 {
		return nil, nil
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, fmt.Errorf("formatter %s not found. Install it or pass --no-format", argv[0])
	}
	return argv, nil
}
