package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-plantillas/pkg/render"
)

type namedRenderer string

func (n namedRenderer) Name() string { return string(n) }
func (namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, render.RenderedForm, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	reg := render.NewRegistry(namedRenderer("vanilla"))
	if err := reg.Register(namedRenderer("tui")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(namedRenderer("tui")); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := reg.Register(namedRenderer(" ")); err == nil {
		t.Fatalf("expected empty name error")
	}
	if diff := cmp.Diff([]string{"tui", "vanilla"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if _, err := reg.Get("preact"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
	if !reg.Has("vanilla") {
		t.Fatalf("expected vanilla to be registered")
	}
}
