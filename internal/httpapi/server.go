package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-plantillas/pkg/catalog"
	"github.com/goliatone/go-plantillas/pkg/orchestrator"
	"github.com/goliatone/go-plantillas/pkg/render"
	"github.com/goliatone/go-plantillas/pkg/renderers/vanilla"
	"github.com/goliatone/go-plantillas/pkg/store"
)

const defaultAssetPrefix = "/assets/plantillas"

// Server wires the store, the form orchestrator and the catalog endpoint
// behind a single http.Handler.
type Server struct {
	store        *store.Store
	orchestrator *orchestrator.Orchestrator
	logger       logrus.FieldLogger
	metrics      *Metrics
	registry     *prometheus.Registry

	resolver     catalog.Resolver
	corsOrigins  []string
	assetPrefix  string
	csrf         func(*http.Request) string
	now          func() time.Time
	orchestrated []orchestrator.Option
}

// Option configures a Server.
type Option func(*Server)

// WithLogger attaches a structured logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithResolver overrides the catalog resolver used when rendering forms. The
// default resolves synchronously against the store.
func WithResolver(resolver catalog.Resolver) Option {
	return func(s *Server) {
		if resolver != nil {
			s.resolver = resolver
		}
	}
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) {
		s.corsOrigins = append([]string(nil), origins...)
	}
}

// WithAssetPrefix mounts the renderer assets under prefix.
func WithAssetPrefix(prefix string) Option {
	return func(s *Server) {
		prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
		if prefix != "" {
			s.assetPrefix = prefix
		}
	}
}

// WithCSRF enables a per-request token emitted as a hidden input and checked
// on urlencoded submissions.
func WithCSRF(token func(*http.Request) string) Option {
	return func(s *Server) {
		s.csrf = token
	}
}

// WithClock anchors date bounds of rendered forms.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMetricsRegistry registers the API instruments on registry and serves
// it from /metrics.
func WithMetricsRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithOrchestratorOptions forwards options such as theme selection to the
// form orchestrator.
func WithOrchestratorOptions(opts ...orchestrator.Option) Option {
	return func(s *Server) {
		s.orchestrated = append(s.orchestrated, opts...)
	}
}

// New builds a Server over st.
func New(st *store.Store, opts ...Option) (*Server, error) {
	if st == nil {
		return nil, errors.New("httpapi: store is required")
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s := &Server{
		store:       st,
		logger:      logger,
		corsOrigins: []string{"*"},
		assetPrefix: defaultAssetPrefix,
		now:         time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.resolver == nil {
		s.resolver = catalog.NewSyncResolver(st, catalog.WithLogger(s.logger))
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = NewMetrics(s.registry)

	renderer, err := vanilla.New(
		vanilla.WithAssetBase(s.assetPrefix),
		vanilla.WithCatalogEndpoint(catalog.MountPath("")),
		vanilla.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}

	orchestratorOpts := append([]orchestrator.Option{
		orchestrator.WithRegistry(render.NewRegistry(renderer)),
		orchestrator.WithResolver(s.resolver),
		orchestrator.WithLogger(s.logger),
	}, s.orchestrated...)
	s.orchestrator = orchestrator.New(orchestratorOpts...)
	return s, nil
}

// Metrics exposes the API instruments.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Handler returns the routed handler wrapped in CORS, metrics and request
// logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.healthz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /plantillas", s.listPlantillas)
	mux.HandleFunc("POST /plantillas", s.createPlantilla)
	mux.HandleFunc("GET /plantillas/{id}", s.getPlantilla)
	mux.HandleFunc("PUT /plantillas/{id}", s.updatePlantilla)
	mux.HandleFunc("DELETE /plantillas/{id}", s.deletePlantilla)
	mux.HandleFunc("GET /plantillas/{id}/form", s.renderForm)
	mux.HandleFunc("GET /plantillas/{id}/schema.json", s.submissionSchema)
	mux.HandleFunc("POST /plantillas/{id}/solicitudes", s.submit)

	mux.HandleFunc("GET /solicitudes", s.listSolicitudes)
	mux.HandleFunc("GET /solicitudes/{id}", s.getSolicitud)
	mux.HandleFunc("POST /solicitudes/{id}/estado", s.transitionSolicitud)

	if _, err := catalog.RegisterRoutes(mux, "", s.store); err != nil {
		s.logger.WithError(err).Error("httpapi: register catalog routes")
	}
	mux.Handle("GET "+s.assetPrefix+"/", http.StripPrefix(s.assetPrefix, http.FileServerFS(vanilla.AssetsFS())))

	c := cors.New(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-CSRF-Token"},
		MaxAge:         300,
	})
	return c.Handler(s.metrics.Middleware(s.logRequests(mux)))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   wrapped.status,
			"duration": time.Since(start),
		}).Debug("httpapi: request")
	})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.WithError(err).Warn("httpapi: health check failed")
		replyJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	replyJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
