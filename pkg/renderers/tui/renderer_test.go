package tui_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-plantillas/pkg/catalog"
	"github.com/goliatone/go-plantillas/pkg/form"
	"github.com/goliatone/go-plantillas/pkg/model"
	"github.com/goliatone/go-plantillas/pkg/render"
	"github.com/goliatone/go-plantillas/pkg/renderers/tui"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	selectCfgs   []tui.SelectConfig
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
	abortOnInput bool
}

func (s *stubDriver) Input(_ context.Context, _ tui.InputConfig) (string, error) {
	if s.abortOnInput {
		return "", tui.ErrAborted
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ tui.ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	s.selectCfgs = append(s.selectCfgs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ tui.TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) sawInfo(fragment string) bool {
	for _, msg := range s.infoMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

var today = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

func threeDays() *int {
	n := 3
	return &n
}

func sampleStructure() model.FormStructure {
	return model.FormStructure{
		Sections: []model.Section{{
			Title: "Datos",
			Icon:  model.IconUser,
			Fields: []model.Field{
				{Name: "nombre", Label: "Nombre", Type: model.FieldTypeText, Required: true},
				{Name: "genero", Label: "Género", Type: model.FieldTypeSelect, Options: []model.Option{
					{Label: "Femenino", Value: "F"},
					{Label: "Masculino", Value: "M"},
				}},
				{Name: "fecha", Label: "Fecha", Type: model.FieldTypeDate, MinDays: threeDays()},
				{Name: "acepta", Label: "Acepta", Type: model.FieldTypeCheckbox},
			},
		}},
	}
}

func TestRender_PromptsEveryFieldWithRetries(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "Ana", "2024-01-12", "2024-01-14"},
		selectIdx: []int{2},
		confirm:   []bool{true},
	}
	r, err := tui.New(tui.WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	opts := render.RenderOptions{Now: today}
	planned := render.Plan(context.Background(), sampleStructure(), nil, opts)
	out, err := r.Render(context.Background(), planned, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := map[string]any{"nombre": "Ana", "genero": "M", "fecha": "2024-01-14", "acepta": true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	if !driver.sawInfo("== Datos") {
		t.Fatalf("expected section heading, got %v", driver.infoMessages)
	}
	if !driver.sawInfo(`El campo "Nombre" es requerido`) {
		t.Fatalf("expected required retry message, got %v", driver.infoMessages)
	}
	if !driver.sawInfo("2024-01-14") {
		t.Fatalf("expected date bound message, got %v", driver.infoMessages)
	}
	if diff := cmp.Diff([]string{"Seleccione una opción", "Femenino", "Masculino"}, driver.selectCfgs[0].Options); diff != "" {
		t.Fatalf("select options mismatch (-want +got):\n%s", diff)
	}
	if r.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestRender_ReadOnlyPrintsValues(t *testing.T) {
	driver := &stubDriver{}
	r, _ := tui.New(tui.WithPromptDriver(driver), tui.WithOutputFormat(tui.OutputFormatPrettyText))

	opts := render.RenderOptions{
		ReadOnly: true,
		Now:      today,
		Values:   map[string]any{"nombre": "Ana", "genero": "F"},
	}
	planned := render.Plan(context.Background(), sampleStructure(), nil, opts)
	out, err := r.Render(context.Background(), planned, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if driver.inputPos+driver.selectPos+driver.confirmPos != 0 {
		t.Fatalf("read-only forms must not prompt")
	}
	if !driver.sawInfo("Nombre: Ana") {
		t.Fatalf("expected value summary, got %v", driver.infoMessages)
	}
	if got := string(out); got != "genero=F\nnombre=Ana\n" {
		t.Fatalf("unexpected pretty output %q", got)
	}
}

func TestRender_EmptyStructure(t *testing.T) {
	driver := &stubDriver{}
	r, _ := tui.New(tui.WithPromptDriver(driver))
	planned := render.Plan(context.Background(), model.FormStructure{}, nil, render.RenderOptions{})

	out, err := r.Render(context.Background(), planned, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "{}" {
		t.Fatalf("expected empty payload, got %s", out)
	}
	if !driver.sawInfo("Esta plantilla no tiene campos configurados.") {
		t.Fatalf("expected empty-state message, got %v", driver.infoMessages)
	}
}

type loadingResolver struct{}

func (loadingResolver) Resolve(context.Context, model.Field) catalog.Result {
	return catalog.Result{Loading: true}
}

func TestRender_LoadingSelectIsSkipped(t *testing.T) {
	driver := &stubDriver{}
	r, _ := tui.New(tui.WithPromptDriver(driver))
	structure := model.FormStructure{Fields: []model.Field{{
		Name:          "ciudad",
		Label:         "Ciudad",
		Type:          model.FieldTypeSelect,
		DataSource:    model.DataSourceDatabase,
		DatabaseTable: catalog.TableCities,
	}}}
	planned := render.Plan(context.Background(), structure, loadingResolver{}, render.RenderOptions{})

	if _, err := r.Render(context.Background(), planned, render.RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if driver.selectPos != 0 {
		t.Fatalf("expected no select prompt while loading")
	}
	if !driver.sawInfo(render.LoadingOptionsLabel) {
		t.Fatalf("expected loading message, got %v", driver.infoMessages)
	}
}

func TestFill_WritesIntoSession(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ana", "2024-01-20"},
		selectIdx: []int{1},
		confirm:   []bool{false},
	}
	r, _ := tui.New(tui.WithPromptDriver(driver))

	structure := sampleStructure()
	var saved map[string]any
	session := form.NewSession(structure, nil, form.WithOnSave(func(_ context.Context, values map[string]any) error {
		saved = values
		return nil
	}))
	planned := render.Plan(context.Background(), structure, nil, render.RenderOptions{Now: today, Values: session.Values()})

	if err := r.Fill(context.Background(), planned, session); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if err := session.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := map[string]any{"nombre": "Ana", "genero": "F", "fecha": "2024-01-20", "acepta": false}
	if diff := cmp.Diff(want, saved); diff != "" {
		t.Fatalf("saved mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_AbortPropagates(t *testing.T) {
	driver := &stubDriver{abortOnInput: true}
	r, _ := tui.New(tui.WithPromptDriver(driver))
	planned := render.Plan(context.Background(), sampleStructure(), nil, render.RenderOptions{Now: today})

	_, err := r.Render(context.Background(), planned, render.RenderOptions{})
	if !errors.Is(err, tui.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}
