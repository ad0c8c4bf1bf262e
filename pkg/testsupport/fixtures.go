// Package testsupport holds fixtures shared by package tests.
package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-plantillas/pkg/catalog"
	"github.com/goliatone/go-plantillas/pkg/model"
	"github.com/goliatone/go-plantillas/pkg/store"
)

// FixedNow is the reference instant used by date-sensitive tests.
var FixedNow = time.Date(2024, time.March, 4, 9, 30, 0, 0, time.UTC)

// LoadStructure parses a JSON or YAML structure fixture.
func LoadStructure(t *testing.T, path string) model.FormStructure {
	t.Helper()

	structure, err := LoadStructureFromPath(path)
	if err != nil {
		t.Fatalf("load structure: %v", err)
	}
	return structure
}

// LoadStructureFromPath is LoadStructure without a testing.T, for setup code.
func LoadStructureFromPath(path string) (model.FormStructure, error) {
	if path == "" {
		return model.FormStructure{}, errors.New("testsupport: structure path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FormStructure{}, fmt.Errorf("testsupport: read structure: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return model.ParseYAML(data)
	default:
		return model.ParseJSON(data)
	}
}

// SampleCatalogs returns the bundled demo catalogs.
func SampleCatalogs(t *testing.T) catalog.StaticFetcher {
	t.Helper()

	samples, err := catalog.Samples()
	if err != nil {
		t.Fatalf("load sample catalogs: %v", err)
	}
	return samples
}

// NewMemoryStore opens a private in-memory store closed with the test.
func NewMemoryStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()

	s, err := store.OpenMemory(context.Background(), opts...)
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// SeedCatalogs copies every sample catalog into s.
func SeedCatalogs(t *testing.T, s *store.Store) {
	t.Helper()

	for table, entries := range SampleCatalogs(t) {
		if err := s.ReplaceCatalog(context.Background(), table, entries); err != nil {
			t.Fatalf("seed catalog %s: %v", table, err)
		}
	}
}
