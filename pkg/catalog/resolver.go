package catalog

import (
	"context"
	"fmt"

	"github.com/goliatone/go-plantillas/internal/model"
)

// Result is the outcome of resolving one field.
type Result struct {
	Data    []Entry
	Loading bool
}

// Resolver resolves the entries backing a database field.
type Resolver interface {
	Resolve(ctx context.Context, field model.Field) Result
}

// Fetcher loads the entries of one catalog table.
type Fetcher interface {
	Fetch(ctx context.Context, table string) ([]Entry, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, table string) ([]Entry, error)

func (fn FetcherFunc) Fetch(ctx context.Context, table string) ([]Entry, error) {
	return fn(ctx, table)
}

// StaticFetcher serves catalogs from memory. Unknown tables yield an empty
// list.
type StaticFetcher map[string][]Entry

func (s StaticFetcher) Fetch(_ context.Context, table string) ([]Entry, error) {
	return cloneEntries(s[table]), nil
}

// SyncResolver fetches on every call and never reports loading. It suits
// one-shot renders where the whole page is produced at once.
type SyncResolver struct {
	fetcher Fetcher
	cfg     config
}

// NewSyncResolver constructs a SyncResolver around fetcher.
func NewSyncResolver(fetcher Fetcher, opts ...ResolverOption) *SyncResolver {
	return &SyncResolver{fetcher: fetcher, cfg: newConfig(opts...)}
}

// Resolve implements Resolver.
func (r *SyncResolver) Resolve(ctx context.Context, field model.Field) Result {
	table, ok := dispatch(field)
	if !ok || r == nil || r.fetcher == nil {
		return Result{}
	}
	entries, err := r.fetcher.Fetch(ctx, table)
	if err != nil {
		r.cfg.logger.WithError(err).WithField("table", table).Warn("catalog: fetch failed")
		return Result{Data: []Entry{}}
	}
	return Result{Data: entries}
}

// dispatch returns the table a field resolves against. Non-database fields
// and unknown tables do not dispatch.
func dispatch(field model.Field) (string, bool) {
	if !field.IsDatabase() {
		return "", false
	}
	if !KnownTable(field.DatabaseTable) {
		return "", false
	}
	return field.DatabaseTable, true
}

// CandidateTypesField is the synthetic field used when a form needs the
// candidate-type catalog outside of a database declaration.
func CandidateTypesField() model.Field {
	return model.Field{
		Name:               TableCandidateTypes,
		DataSource:         model.DataSourceDatabase,
		DatabaseTable:      TableCandidateTypes,
		DatabaseField:      defaultLabelKey,
		DatabaseValueField: defaultLabelKey,
	}
}

// FetchError wraps a fetcher failure with its table.
type FetchError struct {
	Table string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("catalog: fetch %s: %v", e.Table, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
