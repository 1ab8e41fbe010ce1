package generator

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/djgen/djgen/internal/codegen"
	"github.com/djgen/djgen/internal/fielddef"
	"github.com/djgen/djgen/internal/fieldtype"
)

type fakeInspector struct {
	apps map[string]*App
	err  error
}

func (f *fakeInspector) LookupApp(_ context.Context, label string) (*App, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.apps[label], nil
}

type fakeWriter struct {
	app  *App
	text string
	err  error
}

func (f *fakeWriter) Append(_ context.Context, app *App, text string) error {
	f.app = app
	f.text = text
	return f.err
}

func newInspector() *fakeInspector {
	return &fakeInspector{apps: map[string]*App{
		"blog": {Label: "blog", ModelsFile: "/srv/blog/models.py", Models: []string{"post", "comment"}},
	}}
}

func mustParse(t *testing.T, raw ...string) []fielddef.Definition {
	t.Helper()
	defs, err := fielddef.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return defs
}

func TestCheck(t *testing.T) {
	g := New(fieldtype.Builtin(), newInspector(), nil)
	ctx := context.Background()

	t.Run("new model in known app", func(t *testing.T) {
		if err := g.Check(ctx, codegen.ModelSpec{App: "blog", Model: "Tag"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown app", func(t *testing.T) {
		err := g.Check(ctx, codegen.ModelSpec{App: "shop", Model: "Order"})
		var notFound *AppNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected *AppNotFoundError, got %v", err)
		}
		if notFound.App != "shop" {
			t.Errorf("App = %q, want shop", notFound.App)
		}
	})

	t.Run("existing model matched case-insensitively", func(t *testing.T) {
		err := g.Check(ctx, codegen.ModelSpec{App: "blog", Model: "Post"})
		var exists *ModelExistsError
		if !errors.As(err, &exists) {
			t.Fatalf("expected *ModelExistsError, got %v", err)
		}
		if !strings.Contains(err.Error(), "Post") {
			t.Errorf("error should name the model, got: %v", err)
		}
	})

	t.Run("inspector failure is wrapped", func(t *testing.T) {
		boom := errors.New("django.setup failed")
		g := New(fieldtype.Builtin(), &fakeInspector{err: boom}, nil)
		err := g.Check(ctx, codegen.ModelSpec{App: "blog", Model: "Tag"})
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped inspector error, got %v", err)
		}
	})
}

func TestRender(t *testing.T) {
	g := New(fieldtype.Builtin(), nil, nil)

	t.Run("full model", func(t *testing.T) {
		spec := codegen.ModelSpec{
			App:      "blog",
			Model:    "Post",
			Ordering: "-published",
			Fields: mustParse(t,
				"title:CharField",
				"author:ForeignKey:to=auth.User:related_name=posts",
				"published:DateTimeField:null:blank",
			),
		}
		got, err := g.Render(spec)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `class Post(models.Model):
    class Meta:
        verbose_name = "Post"
        verbose_name_plural = "Posts"
        ordering = ["-published"]

    title = models.CharField(max_length=250)
    author = models.ForeignKey(to='auth.User', related_name='posts', on_delete=models.CASCADE)
    published = models.DateTimeField(null=True, blank=True)
`
		if got != want {
			t.Errorf("Render mismatch\ngot:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		spec := codegen.ModelSpec{Model: "Book", Fields: mustParse(t, "title:CharField:null", "pages:IntegerField")}
		first, err := g.Render(spec)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := g.Render(spec)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first != second {
			t.Errorf("two renders differ:\n%s\n---\n%s", first, second)
		}
	})

	t.Run("field order follows input for any permutation", func(t *testing.T) {
		names := []string{"a", "b", "c", "d", "e", "f"}
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 20; i++ {
			rng.Shuffle(len(names), func(x, y int) { names[x], names[y] = names[y], names[x] })
			raw := make([]string, len(names))
			for j, n := range names {
				raw[j] = n + ":TextField"
			}
			out, err := g.Render(codegen.ModelSpec{Model: "M", Fields: mustParse(t, raw...)})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got []string
			for _, line := range strings.Split(out, "\n") {
				if strings.HasSuffix(line, "= models.TextField()") {
					got = append(got, strings.TrimSpace(strings.SplitN(line, "=", 2)[0]))
				}
			}
			if strings.Join(got, ",") != strings.Join(names, ",") {
				t.Fatalf("order = %v, want %v", got, names)
			}
		}
	})

	t.Run("unknown type fails before later fields", func(t *testing.T) {
		spec := codegen.ModelSpec{Model: "M", Fields: mustParse(t, "a:TextField", "b:Foo", "c:ForeignKey")}
		out, err := g.Render(spec)
		var unknown *fieldtype.UnknownTypeError
		if !errors.As(err, &unknown) {
			t.Fatalf("expected *UnknownTypeError, got %v", err)
		}
		if out != "" {
			t.Errorf("expected no partial output, got %q", out)
		}
		if !strings.Contains(err.Error(), `field "b"`) {
			t.Errorf("error should name the field, got: %v", err)
		}
	})

	t.Run("validation errors surface unchanged", func(t *testing.T) {
		spec := codegen.ModelSpec{Model: "M", Fields: mustParse(t, "owner:ForeignKey")}
		_, err := g.Render(spec)
		var missing *codegen.MissingArgumentError
		if !errors.As(err, &missing) {
			t.Fatalf("expected *MissingArgumentError, got %v", err)
		}
	})
}

func TestWrite(t *testing.T) {
	ctx := context.Background()

	t.Run("appends to the app", func(t *testing.T) {
		w := &fakeWriter{}
		g := New(fieldtype.Builtin(), newInspector(), w)
		app, err := g.Write(ctx, codegen.ModelSpec{App: "blog", Model: "Tag"}, "class Tag: ...\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if app == nil || app.Label != "blog" {
			t.Errorf("Write returned app %+v", app)
		}
		if w.app == nil || w.app.ModelsFile != "/srv/blog/models.py" {
			t.Errorf("writer got app %+v", w.app)
		}
		if w.text != "class Tag: ...\n" {
			t.Errorf("writer got text %q", w.text)
		}
	})

	t.Run("refuses existing model", func(t *testing.T) {
		w := &fakeWriter{}
		g := New(fieldtype.Builtin(), newInspector(), w)
		_, err := g.Write(ctx, codegen.ModelSpec{App: "blog", Model: "Comment"}, "x")
		var exists *ModelExistsError
		if !errors.As(err, &exists) {
			t.Fatalf("expected *ModelExistsError, got %v", err)
		}
		if w.app != nil {
			t.Error("writer must not be called")
		}
	})

	t.Run("writer failure returns no app", func(t *testing.T) {
		boom := errors.New("disk full")
		g := New(fieldtype.Builtin(), newInspector(), &fakeWriter{err: boom})
		app, err := g.Write(ctx, codegen.ModelSpec{App: "blog", Model: "Tag"}, "x")
		if !errors.Is(err, boom) || app != nil {
			t.Fatalf("Write = %v, %v; want nil, disk full", app, err)
		}
	})

	t.Run("no writer", func(t *testing.T) {
		g := New(fieldtype.Builtin(), newInspector(), nil)
		if _, err := g.Write(ctx, codegen.ModelSpec{App: "blog", Model: "Tag"}, "x"); err == nil {
			t.Fatal("expected error without writer")
		}
	})
}
