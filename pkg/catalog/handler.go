package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
)

// HTTPError carries the status code a guard or lookup failure maps to.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError is a basic HTTPError.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type optionsResponse struct {
	Data []Option `json:"data"`
}

// NewHandler builds the catalog handler over source with default options plus
// any overrides.
func NewHandler(source Fetcher, fns ...OptionFn) http.Handler {
	return HandlerWithOptions(source, NewOptions(fns...))
}

// HandlerWithOptions builds the catalog handler from a pre-built Options
// value. The table is read from the "table" path value, falling back to the
// last path segment when the handler is mounted without a pattern.
func HandlerWithOptions(source Fetcher, opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeError(w, err, http.StatusForbidden)
				return
			}
		}

		table := r.PathValue("table")
		if table == "" {
			table = path.Base(r.URL.Path)
		}
		if !KnownTable(table) {
			writeError(w, StatusError{Code: http.StatusNotFound, Err: fmt.Errorf("catalog: unknown table %q", table)}, http.StatusNotFound)
			return
		}
		if source == nil {
			writeError(w, StatusError{Code: http.StatusServiceUnavailable}, http.StatusServiceUnavailable)
			return
		}

		entries, err := source.Fetch(r.Context(), table)
		if err != nil {
			writeError(w, &FetchError{Table: table, Err: err}, http.StatusBadGateway)
			return
		}

		params := r.URL.Query()
		projection := opts.projection(table)
		if key := strings.TrimSpace(params.Get(opts.LabelParam)); key != "" {
			projection.LabelKey = key
		}
		if key := strings.TrimSpace(params.Get(opts.ValueParam)); key != "" {
			projection.ValueKey = key
		}
		limit := parseInt(params.Get(opts.LimitParam))
		results := Search(ProjectAll(entries, projection), params.Get(opts.SearchParam), limit, opts)
		if results == nil {
			results = []Option{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(optionsResponse{Data: results})
	})
}

func writeError(w http.ResponseWriter, err error, fallback int) {
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if status := httpErr.StatusCode(); status > 0 {
			code = status
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
