package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-plantillas/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	fields := append(render.PlantillaRef("p-1", "emp-9"),
		render.CSRFToken("token123"),
		render.Hidden("version", 4),
		render.Hidden("  ", "skip"),
	)
	merged := render.MergeHiddenFields(base, fields...)

	wantMerged := map[string]string{
		"existing":     "keep",
		"_csrf":        "token123",
		"plantilla_id": "p-1",
		"empresa_id":   "emp-9",
		"version":      "4",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "empresa_id", Value: "emp-9"},
		{Name: "existing", Value: "keep"},
		{Name: "plantilla_id", Value: "p-1"},
		{Name: "version", Value: "4"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}

	if got := render.PlantillaRef("p-2", " "); len(got) != 1 {
		t.Fatalf("expected empresa to be omitted, got %+v", got)
	}
}
