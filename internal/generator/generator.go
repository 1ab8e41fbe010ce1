package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/djgen/djgen/internal/codegen"
	"github.com/djgen/djgen/internal/fieldtype"
)

// App describes one installed Django app as reported by the project.
type App struct {
	Label      string   // App label (e.g., "blog")
	Path       string   // App package directory
	ModelsFile string   // models.py path; empty if the app has no models module
	Models     []string // Model names, lowercase as in apps.get_app_config().models
}

// Inspector answers which apps a project has installed.
// LookupApp returns (nil, nil) when no app has the given label.
type Inspector interface {
	LookupApp(ctx context.Context, label string) (*App, error)
}

// Writer persists generated source into an app.
type Writer interface {
	Append(ctx context.Context, app *App, text string) error
}

// AppNotFoundError is returned by Check when the target app is not installed.
type AppNotFoundError struct {
	App string
}

func (e *AppNotFoundError) Error() string {
	return fmt.Sprintf("there is no app named %s", e.App)
}

// ModelExistsError is returned by Check when the app already has the model.
type ModelExistsError struct {
	App   string
	Model string
}

func (e *ModelExistsError) Error() string {
	return fmt.Sprintf("the app %q already has a model called %s", e.App, e.Model)
}

// Generator sequences the precondition checks, rendering and writing of a
// model. Render needs only the registry; Check and Write use the project
// collaborators.
type Generator struct {
	registry  *fieldtype.Registry
	inspector Inspector
	writer    Writer
}

// New creates a Generator. inspector and writer may be nil when only Render
// is used.
func New(registry *fieldtype.Registry, inspector Inspector, writer Writer) *Generator {
	return &Generator{registry: registry, inspector: inspector, writer: writer}
}

// Check verifies that spec.App is installed and has no model named
// spec.Model, compared case-insensitively.
func (g *Generator) Check(ctx context.Context, spec codegen.ModelSpec) error {
	_, err := g.app(ctx, spec)
	return err
}

func (g *Generator) app(ctx context.Context, spec codegen.ModelSpec) (*App, error) {
	if g.inspector == nil {
		return nil, fmt.Errorf("no project inspector configured")
	}
	app, err := g.inspector.LookupApp(ctx, spec.App)
	if err != nil {
		return nil, fmt.Errorf("inspect project: %w", err)
	}
	if app == nil {
		return nil, &AppNotFoundError{App: spec.App}
	}

	want := strings.ToLower(spec.Model)
	for _, m := range app.Models {
		if strings.ToLower(m) == want {
			return nil, &ModelExistsError{App: spec.App, Model: spec.Model}
		}
	}
	return app, nil
}

// Render resolves every field of spec and assembles the class source. It
// does no I/O and stops at the first invalid field.
func (g *Generator) Render(spec codegen.ModelSpec) (string, error) {
	lines := make([]string, 0, len(spec.Fields))
	for _, f := range spec.Fields {
		ft, err := g.registry.Lookup(f.Type)
		if err != nil {
			return "", fmt.Errorf("field %q: %w", f.Name, err)
		}
		args, err := codegen.Resolve(ft, f.Name, f.Args)
		if err != nil {
			return "", err
		}
		lines = append(lines, codegen.RenderField(f.Name, ft.Tag, args))
	}
	return codegen.Assemble(spec, lines), nil
}

// Write appends text to the models module of spec.App and returns the app
// written to. It re-runs the existence check against the inspector's app
// list first; an inspector that caches its list will not see models added
// since Check.
func (g *Generator) Write(ctx context.Context, spec codegen.ModelSpec, text string) (*App, error) {
	if g.writer == nil {
		return nil, fmt.Errorf("no writer configured")
	}
	app, err := g.app(ctx, spec)
	if err != nil {
		return nil, err
	}
	if err := g.writer.Append(ctx, app, text); err != nil {
		return nil, err
	}
	return app, nil
}
