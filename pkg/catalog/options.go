package catalog

import "net/http"

// EmptySearchMode controls what an empty query returns.
type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

const (
	defaultRoutePath    = "/api/catalogos/{table}"
	defaultSearchParam  = "q"
	defaultLimitParam   = "limit"
	defaultLabelParam   = "label"
	defaultValueParam   = "value"
	defaultDefaultLimit = 50
	defaultMaxLimit     = 500
)

// GuardFunc rejects a request by returning an error. Errors implementing
// HTTPError choose the response status.
type GuardFunc func(r *http.Request) error

// Options configures the catalog HTTP handler. LabelParam and ValueParam
// name the query parameters that override the projection keys per request.
type Options struct {
	RoutePath       string
	SearchParam     string
	LimitParam      string
	LabelParam      string
	ValueParam      string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	Guard           GuardFunc

	// Projections overrides the label/value keys per table. Tables without an
	// entry project "nombre" as the label and "id" as the value.
	Projections map[string]Projection
}

// OptionFn mutates handler Options.
type OptionFn func(*Options)

// DefaultOptions returns the handler defaults.
func DefaultOptions() Options {
	return Options{
		RoutePath:       defaultRoutePath,
		SearchParam:     defaultSearchParam,
		LimitParam:      defaultLimitParam,
		LabelParam:      defaultLabelParam,
		ValueParam:      defaultValueParam,
		DefaultLimit:    defaultDefaultLimit,
		MaxLimit:        defaultMaxLimit,
		EmptySearchMode: EmptySearchTop,
	}
}

// NewOptions applies fns over the defaults and repairs zero values.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaultDefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = defaultMaxLimit
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = EmptySearchTop
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.SearchParam == "" {
		opts.SearchParam = defaultSearchParam
	}
	if opts.LimitParam == "" {
		opts.LimitParam = defaultLimitParam
	}
	if opts.LabelParam == "" {
		opts.LabelParam = defaultLabelParam
	}
	if opts.ValueParam == "" {
		opts.ValueParam = defaultValueParam
	}
	if opts.Projections != nil {
		projections := make(map[string]Projection, len(opts.Projections))
		for table, projection := range opts.Projections {
			projections[table] = projection
		}
		opts.Projections = projections
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) { o.RoutePath = path }
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) { o.SearchParam = name }
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) { o.LimitParam = name }
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) { o.DefaultLimit = limit }
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) { o.MaxLimit = limit }
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) { o.EmptySearchMode = mode }
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) { o.Guard = guard }
}

// WithProjection sets the label/value keys used for table.
func WithProjection(table string, projection Projection) OptionFn {
	return func(o *Options) {
		if o.Projections == nil {
			o.Projections = make(map[string]Projection)
		}
		o.Projections[table] = projection
	}
}

func (o Options) projection(table string) Projection {
	if p, ok := o.Projections[table]; ok {
		if p.LabelKey == "" {
			p.LabelKey = defaultLabelKey
		}
		if p.ValueKey == "" {
			p.ValueKey = idKey
		}
		return p
	}
	return Projection{LabelKey: defaultLabelKey, ValueKey: idKey}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
