package django

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/djgen/djgen/internal/generator"
	"github.com/kballard/go-shellquote"
)

const (
	// SettingsEnv is the variable Django reads its settings module from.
	SettingsEnv = "DJANGO_SETTINGS_MODULE"

	appsMarker = "DJGEN_APPS:"
)

// introspectScript prints every installed app config as one JSON line
// prefixed with appsMarker, so stray output from settings modules is skipped.
const introspectScript = `
import json
import django
from django.apps import apps

django.setup()
out = []
for cfg in apps.get_app_configs():
    mod = getattr(cfg, "models_module", None)
    out.append({
        "label": cfg.label,
        "path": cfg.path,
        "models_file": getattr(mod, "__file__", None) or "",
        "models": sorted(cfg.models.keys()),
    })
print("` + appsMarker + `" + json.dumps(out))
`

type appRecord struct {
	Label      string   `json:"label"`
	Path       string   `json:"path"`
	ModelsFile string   `json:"models_file"`
	Models     []string `json:"models"`
}

// Inspector discovers installed apps by running the project's Python
// interpreter. The app list is loaded on first use and reused afterwards.
type Inspector struct {
	Python   string // Interpreter command, shell-quoted (e.g., "poetry run python")
	Dir      string // Project directory; the interpreter runs here
	Settings string // Settings module used when DJANGO_SETTINGS_MODULE is unset

	apps map[string]*generator.App
}

// LookupApp implements generator.Inspector.
func (i *Inspector) LookupApp(ctx context.Context, label string) (*generator.App, error) {
	apps, err := i.Apps(ctx)
	if err != nil {
		return nil, err
	}
	return apps[label], nil
}

// Apps returns every installed app keyed by label.
func (i *Inspector) Apps(ctx context.Context) (map[string]*generator.App, error) {
	if i.apps != nil {
		return i.apps, nil
	}

	argv, err := shellquote.Split(i.Python)
	if err != nil {
		return nil, fmt.Errorf("invalid python command %q: %w", i.Python, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("python command is empty")
	}

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], "-c", introspectScript)...)
	cmd.Dir = i.Dir
	cmd.Env = os.Environ()
	if os.Getenv(SettingsEnv) == "" && i.Settings != "" {
		cmd.Env = append(cmd.Env, SettingsEnv+"="+i.Settings)
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("django introspection timed out: %w", ctx.Err())
		}
		return nil, fmt.Errorf("django introspection failed: %s\n%s", err, strings.TrimSpace(stderr.String()))
	}

	records, err := parseApps(out)
	if err != nil {
		return nil, err
	}

	apps := make(map[string]*generator.App, len(records))
	for _, r := range records {
		apps[r.Label] = &generator.App{
			Label:      r.Label,
			Path:       r.Path,
			ModelsFile: r.ModelsFile,
			Models:     r.Models,
		}
	}
	i.apps = apps
	return apps, nil
}

// parseApps finds the marker line in the interpreter output and decodes it.
func parseApps(out []byte) ([]appRecord, error) {
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		payload, ok := strings.CutPrefix(line, appsMarker)
		if !ok {
			continue
		}
		var records []appRecord
		if err := json.Unmarshal([]byte(payload), &records); err != nil {
			return nil, fmt.Errorf("parse django app list: %w", err)
		}
		return records, nil
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read django app list: %w", err)
	}
	return nil, fmt.Errorf("django introspection produced no app list")
}
