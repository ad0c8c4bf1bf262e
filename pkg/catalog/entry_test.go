package catalog_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-plantillas/pkg/catalog"
	"github.com/goliatone/go-plantillas/pkg/model"
)

func TestEntryProject(t *testing.T) {
	cases := []struct {
		name  string
		entry catalog.Entry
		label string
		value string
		want  catalog.Option
	}{
		{
			name:  "both keys present",
			entry: catalog.Entry{"nombre": "Bogotá", "codigo": "BOG"},
			label: "nombre", value: "codigo",
			want: catalog.Option{Label: "Bogotá", Value: "BOG"},
		},
		{
			name:  "value falls back to id",
			entry: catalog.Entry{"nombre": "Norte", "id": 7},
			label: "nombre", value: "codigo",
			want: catalog.Option{Label: "Norte", Value: "7"},
		},
		{
			name:  "value falls back to label",
			entry: catalog.Entry{"nombre": "Operario"},
			label: "nombre", value: "codigo",
			want: catalog.Option{Label: "Operario", Value: "Operario"},
		},
		{
			name:  "label falls back to value",
			entry: catalog.Entry{"codigo": "CC-01"},
			label: "nombre", value: "codigo",
			want: catalog.Option{Label: "CC-01", Value: "CC-01"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.entry.Project(tc.label, tc.value)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("projection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProjectionForDefaults(t *testing.T) {
	got := catalog.ProjectionFor(model.Field{DatabaseValueField: "id"})
	want := catalog.Projection{LabelKey: "nombre", ValueKey: "id"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("projection mismatch (-want +got):\n%s", diff)
	}

	options := catalog.ProjectAll([]catalog.Entry{{"nombre": "A", "id": 1}, {}}, got)
	if diff := cmp.Diff([]catalog.Option{{Label: "A", Value: "1"}}, options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestKnownTable(t *testing.T) {
	for _, table := range catalog.Tables() {
		if !catalog.KnownTable(table) {
			t.Fatalf("expected %q to be known", table)
		}
	}
	if catalog.KnownTable("empleados") {
		t.Fatalf("unexpected known table")
	}
}

func TestSamples(t *testing.T) {
	samples, err := catalog.Samples()
	if err != nil {
		t.Fatalf("samples: %v", err)
	}
	for _, table := range catalog.Tables() {
		if len(samples[table]) == 0 {
			t.Fatalf("expected sample rows for %s", table)
		}
	}
	cities := catalog.ProjectAll(samples[catalog.TableCities], catalog.Projection{LabelKey: "nombre", ValueKey: "id"})
	if cities[1].Value != "05001" || cities[1].Label != "Medellín" {
		t.Fatalf("unexpected city projection: %+v", cities[1])
	}
}
