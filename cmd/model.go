package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/djgen/djgen/internal/codegen"
	"github.com/djgen/djgen/internal/config"
	"github.com/djgen/djgen/internal/django"
	"github.com/djgen/djgen/internal/fielddef"
	"github.com/djgen/djgen/internal/fieldtype"
	"github.com/djgen/djgen/internal/generator"
	"github.com/djgen/djgen/internal/nameutil"
	"github.com/djgen/djgen/internal/prompt"
	"github.com/spf13/cobra"
)

var (
	flagOrdering       string
	flagDjangoSettings string
	flagProjectDir     string
	flagConfig         string
	flagPython         string
	flagFormatter      string
	flagNoFormat       bool
	flagYes            bool
	flagDryRun         bool
	flagVerbose        bool
	flagQuiet          bool
)

var modelCmd = &cobra.Command{
	Use:   "model [app] [model] [field...]",
	Short: "Generate a model",
	Long: `Generate a Django model class and append it to the app's models.py.

Each field is written as name:type[:arg]*, where arg is a flag such as null
or blank, or key=value such as max_length=80. Run "djgen types" for the list
of field types. When no fields are given, they are asked for interactively.

Examples:
  # Two fields, ordered by title
  djgen model blog Post title:CharField body:TextField:blank --ordering title

  # Relations
  djgen model blog Comment post:ForeignKey:to=blog.Post:related_name=comments

  # Preview without touching models.py
  djgen model blog Tag name:SlugField:unique --dry-run

  # Fully interactive
  djgen model`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runModel,
}

func init() {
	f := modelCmd.Flags()
	f.StringVarP(&flagOrdering, "ordering", "o", "", "Meta.ordering, comma-separated (e.g. -created,title)")
	f.StringVarP(&flagDjangoSettings, "django-settings", "s", "", "settings module used when DJANGO_SETTINGS_MODULE is unset")
	f.StringVar(&flagProjectDir, "project-dir", ".", "Django project directory (where manage.py lives)")
	f.StringVar(&flagConfig, "config", "", "config file (default <project-dir>/"+config.FileName+")")
	f.StringVar(&flagPython, "python", "", "Python interpreter command with Django installed")
	f.StringVar(&flagFormatter, "formatter", "", "formatter command run on models.py after writing")
	f.BoolVar(&flagNoFormat, "no-format", false, "do not run the formatter after writing")
	f.BoolVarP(&flagYes, "yes", "y", false, "write without asking for confirmation")
	f.BoolVar(&flagDryRun, "dry-run", false, "print the generated model without writing it")
	f.BoolVar(&flagVerbose, "verbose", false, "show detailed progress")
	f.BoolVar(&flagQuiet, "quiet", false, "suppress all output except errors")
}

func runModel(cmd *cobra.Command, args []string) error {
	if flagVerbose && flagQuiet {
		return fmt.Errorf("--verbose and --quiet cannot be used together")
	}

	projectDir, err := filepath.Abs(flagProjectDir)
	if err != nil {
		return fmt.Errorf("resolve project dir: %w", err)
	}
	cfg, err := config.Load(projectDir, flagConfig)
	if err != nil {
		return err
	}
	applyFlags(cfg)
	verbose("Using python %q in %s", cfg.Python, projectDir)

	registry := fieldtype.Builtin()
	inspector := &django.Inspector{Python: cfg.Python, Dir: projectDir, Settings: cfg.Settings}
	writer := &django.Writer{Formatter: cfg.FormatterCommand(), Dir: projectDir}

	run := &modelRun{
		collector: prompt.NewCollector(prompt.NewSurveyDriver(), registry),
		gen:       generator.New(registry, inspector, writer),
		out:       cmd.OutOrStdout(),
		ordering:  flagOrdering,
		timeout:   cfg.Timeout,
		dryRun:    flagDryRun,
		yes:       flagYes,
		quiet:     flagQuiet,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return run.execute(ctx, args)
}

// modelRun is one invocation of the model command with its collaborators
// already built.
type modelRun struct {
	collector *prompt.Collector
	gen       *generator.Generator
	out       io.Writer
	ordering  string
	timeout   int // seconds for the app check; 0 means no limit
	dryRun    bool
	yes       bool
	quiet     bool
}

// execute checks the target app first, then parses or collects fields,
// renders, prints, confirms and writes. Nothing is written unless every
// earlier step succeeded.
func (r *modelRun) execute(ctx context.Context, args []string) error {
	spec, err := r.modelNames(ctx, args)
	if err != nil {
		return err
	}

	verbose("Checking app %q...", spec.App)
	if err := r.check(ctx, spec); err != nil {
		return err
	}

	if len(args) > 2 {
		spec.Fields, err = fielddef.Parse(args[2:])
	} else {
		spec.Fields, err = r.collector.Fields(ctx)
	}
	if err != nil {
		return err
	}

	verbose("Rendering %d fields...", len(spec.Fields))
	rendered, err := r.gen.Render(spec)
	if err != nil {
		return err
	}

	if !r.quiet || r.dryRun {
		fmt.Fprintln(r.out, comment(r.out, "# App name: "+spec.App))
		fmt.Fprint(r.out, highlight(r.out, rendered))
	}
	if r.dryRun {
		return nil
	}

	if !r.yes {
		ok, err := r.collector.Confirm(ctx, "Is this what you want?", true)
		if err != nil {
			return err
		}
		if !ok {
			verbose("Nothing written")
			return nil
		}
	}

	app, err := r.gen.Write(ctx, spec, rendered)
	if err != nil {
		return err
	}
	if !r.quiet {
		fmt.Fprintf(r.out, "Added %s to %s\n", spec.Model, django.ModelsPath(app))
	}
	return nil
}

// modelNames takes the app and model name from args, prompting for
// whichever is missing.
func (r *modelRun) modelNames(ctx context.Context, args []string) (codegen.ModelSpec, error) {
	spec := codegen.ModelSpec{Ordering: r.ordering}

	var err error
	if len(args) > 0 {
		spec.App = args[0]
	} else if spec.App, err = r.collector.Ask(ctx, "What app does the model belong to?"); err != nil {
		return spec, err
	}
	if len(args) > 1 {
		spec.Model = args[1]
	} else if spec.Model, err = r.collector.Ask(ctx, "What is the name of the model?"); err != nil {
		return spec, err
	}
	if !nameutil.IsIdentifier(spec.Model) {
		return spec, fmt.Errorf("%q is not a valid model name", spec.Model)
	}
	return spec, nil
}

// check runs the precondition checks, bounded by the configured timeout.
func (r *modelRun) check(ctx context.Context, spec codegen.ModelSpec) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(r.timeout)*time.Second)
		defer cancel()
	}
	return r.gen.Check(ctx, spec)
}

// applyFlags lets explicitly set flags override the loaded config.
func applyFlags(cfg *config.Config) {
	if flagPython != "" {
		cfg.Python = flagPython
	}
	if flagDjangoSettings != "" {
		cfg.Settings = flagDjangoSettings
	}
	if flagFormatter != "" {
		cfg.Formatter = flagFormatter
	}
	if flagNoFormat {
		off := false
		cfg.Format = &off
	}
}

// verbose prints a message if --verbose is set.
func verbose(format string, args ...interface{}) {
	if flagVerbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
