package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-plantillas/pkg/catalog"
)

type handlerResponse struct {
	Data []catalog.Option `json:"data"`
}

func citiesSource() catalog.StaticFetcher {
	return catalog.StaticFetcher{
		catalog.TableCities: {
			{"id": 1, "nombre": "Medellín"},
			{"id": 2, "nombre": "Bogotá"},
			{"id": 3, "nombre": "Barranquilla"},
			{"id": 4, "nombre": "Santa Marta"},
			{"id": 5, "nombre": "Armenia"},
		},
	}
}

func serve(t *testing.T, handler http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle("/api/catalogos/{table}", handler)
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) handlerResponse {
	t.Helper()
	if ct := strings.TrimSpace(rec.Header().Get("Content-Type")); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload
}

func TestHandler_EmptyQueryReturnsTopEntries(t *testing.T) {
	rec := serve(t, catalog.NewHandler(citiesSource(), catalog.WithDefaultLimit(2)), http.MethodGet, "/api/catalogos/ciudades")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	want := []catalog.Option{{Value: "1", Label: "Medellín"}, {Value: "2", Label: "Bogotá"}}
	if diff := cmp.Diff(want, decode(t, rec).Data); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_SearchPrefersPrefixMatches(t *testing.T) {
	rec := serve(t, catalog.NewHandler(citiesSource()), http.MethodGet, "/api/catalogos/ciudades?q=AR")
	want := []catalog.Option{
		{Value: "5", Label: "Armenia"},
		{Value: "3", Label: "Barranquilla"},
		{Value: "4", Label: "Santa Marta"},
	}
	if diff := cmp.Diff(want, decode(t, rec).Data); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_EmptySearchNoneReturnsEmptyArray(t *testing.T) {
	h := catalog.NewHandler(citiesSource(), catalog.WithEmptySearchMode(catalog.EmptySearchNone))
	payload := decode(t, serve(t, h, http.MethodGet, "/api/catalogos/ciudades"))
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
}

func TestHandler_ProjectionOverride(t *testing.T) {
	h := catalog.NewHandler(citiesSource(), catalog.WithProjection(catalog.TableCities, catalog.Projection{ValueKey: "nombre"}))
	payload := decode(t, serve(t, h, http.MethodGet, "/api/catalogos/ciudades?q=santa"))
	if diff := cmp.Diff([]catalog.Option{{Value: "Santa Marta", Label: "Santa Marta"}}, payload.Data); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_Errors(t *testing.T) {
	failing := catalog.FetcherFunc(func(context.Context, string) ([]catalog.Entry, error) {
		return nil, errors.New("db down")
	})
	guarded := catalog.NewHandler(citiesSource(), catalog.WithGuard(func(*http.Request) error {
		return catalog.StatusError{Code: http.StatusUnauthorized}
	}))

	cases := []struct {
		name    string
		handler http.Handler
		method  string
		target  string
		want    int
	}{
		{name: "unknown table", handler: catalog.NewHandler(citiesSource()), method: http.MethodGet, target: "/api/catalogos/empleados", want: http.StatusNotFound},
		{name: "fetch failure", handler: catalog.NewHandler(failing), method: http.MethodGet, target: "/api/catalogos/ciudades", want: http.StatusBadGateway},
		{name: "guard", handler: guarded, method: http.MethodGet, target: "/api/catalogos/ciudades", want: http.StatusUnauthorized},
		{name: "method", handler: catalog.NewHandler(citiesSource()), method: http.MethodPost, target: "/api/catalogos/ciudades", want: http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, tc.handler, tc.method, tc.target)
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestRegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := catalog.RegisterRoutes(mux, "/v1/", citiesSource())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "/v1/api/catalogos/{table}" {
		t.Fatalf("unexpected pattern %q", pattern)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/api/catalogos/ciudades?q=bog", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	payload := decode(t, rec)
	if len(payload.Data) != 1 || payload.Data[0].Label != "Bogotá" {
		t.Fatalf("unexpected payload %#v", payload)
	}

	if _, err := catalog.RegisterRoutes(nil, "", citiesSource()); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}

func TestHandler_ProjectionQueryOverride(t *testing.T) {
	rec := serve(t, catalog.NewHandler(citiesSource(), catalog.WithDefaultLimit(1)), http.MethodGet, "/api/catalogos/ciudades?value=nombre")
	want := []catalog.Option{{Value: "Medellín", Label: "Medellín"}}
	if diff := cmp.Diff(want, decode(t, rec).Data); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}
