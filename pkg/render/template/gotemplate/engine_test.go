package gotemplate_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-plantillas/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	files := fstest.MapFS{
		"saludo.tpl":     {Data: []byte(`Hola {{ nombre }}`)},
		"empresa.tpl":    {Data: []byte(`{{ settings.empresa }}`)},
		"grito.tpl":      {Data: []byte(`{{ nombre|grito }}`)},
		"clases.tpl":     {Data: []byte(`{{ base|joinclass:extra }}`)},
		"estilo.tpl":     {Data: []byte(`{{ valor|cssvalue }}`)},
		"estructura.tpl": {Data: []byte(`{{ campo.name }}={{ campo.required }}`)},
	}
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplateWritesOutputs(t *testing.T) {
	engine := newEngine(t)
	var buf bytes.Buffer
	got, err := engine.RenderTemplate("saludo", map[string]any{"nombre": "Ana"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hola Ana" || buf.String() != "Hola Ana" {
		t.Fatalf("unexpected output %q / %q", got, buf.String())
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"empresa": "Acme"},
	}))
	got, err := engine.RenderTemplate("empresa", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Acme" {
		t.Fatalf("expected global value, got %q", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	name := "grito"
	err := engine.RegisterFilter(name, func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("register filter: %v", err)
	}
	got, err := engine.RenderTemplate("grito", map[string]any{"nombre": "Ana"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ANA!" {
		t.Fatalf("unexpected output %q", got)
	}
	if err := engine.RegisterFilter(name, func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}
}

func TestEngine_BuiltinFilters(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("clases", map[string]any{"base": " col-span-6 ", "extra": "campo"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "col-span-6 campo" {
		t.Fatalf("unexpected class list %q", got)
	}

	got, err = engine.RenderTemplate("estilo", map[string]any{"valor": "45%; color: red"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "45% color: red" {
		t.Fatalf("unexpected css value %q", got)
	}
}

func TestEngine_StructDataUsesJSONNames(t *testing.T) {
	type campo struct {
		Name     string `json:"name"`
		Required bool   `json:"required"`
	}
	engine := newEngine(t)
	got, err := engine.RenderTemplate("estructura", map[string]any{"campo": campo{Name: "correo", Required: true}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "correo=True" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RenderInlineContent(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.Render("{{ a }}-{{ b }}", map[string]any{"a": 1, "b": "x"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "1-x" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}
