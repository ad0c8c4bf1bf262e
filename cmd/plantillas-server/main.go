// Command plantillas-server serves plantillas, their HTML forms, catalogs and
// solicitudes over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-plantillas/internal/config"
	"github.com/goliatone/go-plantillas/internal/httpapi"
	"github.com/goliatone/go-plantillas/pkg/catalog"
	"github.com/goliatone/go-plantillas/pkg/orchestrator"
	"github.com/goliatone/go-plantillas/pkg/plantilla"
	"github.com/goliatone/go-plantillas/pkg/store"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := config.NewLogger(cfg.Log, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("plantillas-server: exiting")
	}
}

func run(ctx context.Context, cfg config.Config, logger *logrus.Logger) error {
	if cfg.File != "" {
		logger.WithField("file", cfg.File).Info("plantillas-server: configuration loaded")
	}

	st, err := store.Open(ctx, cfg.Database.DSN, store.WithLogger(logger))
	if err != nil {
		return err
	}
	defer st.Close()

	if err := seed(ctx, st, cfg, logger); err != nil {
		return err
	}

	resolver := catalog.NewAsyncResolver(st, catalog.WithLogger(logger))
	defer func() {
		_ = resolver.Close()
		resolver.Wait()
	}()
	resolver.Prefetch(catalog.Tables()...)

	refresher, err := catalog.NewRefresher(resolver, cfg.Catalogs.RefreshSchedule, logger, catalog.Tables()...)
	if err != nil {
		return err
	}
	refresher.Start()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	apiOpts := []httpapi.Option{
		httpapi.WithLogger(logger),
		httpapi.WithResolver(resolver),
		httpapi.WithCORSOrigins(cfg.HTTP.CORSOrigins...),
		httpapi.WithAssetPrefix(cfg.HTTP.AssetPrefix),
		httpapi.WithMetricsRegistry(registry),
	}
	if cfg.Theme.Manifest != "" {
		manifest, err := config.LoadThemeManifest(cfg.Theme.Manifest)
		if err != nil {
			return err
		}
		apiOpts = append(apiOpts, httpapi.WithOrchestratorOptions(
			orchestrator.WithThemeManifests(cfg.Theme.Name, cfg.Theme.Variant, manifest),
		))
	}
	api, err := httpapi.New(st, apiOpts...)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.HTTP.Addr).Info("plantillas-server: listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		_ = refresher.Stop(context.Background())
		return err
	case <-ctx.Done():
	}

	logger.Info("plantillas-server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := refresher.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Warn("plantillas-server: stop refresher")
	}
	return server.Shutdown(shutdownCtx)
}

// seed imports the bundled samples and any configured files. Existing rows
// with the same ids are replaced.
func seed(ctx context.Context, st *store.Store, cfg config.Config, logger logrus.FieldLogger) error {
	if cfg.Catalogs.SeedSamples {
		samples, err := catalog.Samples()
		if err != nil {
			return err
		}
		if err := replaceCatalogs(ctx, st, samples); err != nil {
			return err
		}
	}
	if cfg.Catalogs.File != "" {
		data, err := os.ReadFile(cfg.Catalogs.File)
		if err != nil {
			return fmt.Errorf("plantillas-server: read catalogs: %w", err)
		}
		catalogs, err := catalog.DecodeYAML(data)
		if err != nil {
			return err
		}
		if err := replaceCatalogs(ctx, st, catalogs); err != nil {
			return err
		}
	}

	if cfg.Plantillas.SeedSamples {
		set, err := plantilla.LoadFS(plantilla.SamplesFS())
		if err != nil {
			return err
		}
		if err := st.ImportSet(ctx, set); err != nil {
			return err
		}
		logger.WithField("count", set.Len()).Info("plantillas-server: sample plantillas imported")
	}
	if cfg.Plantillas.Dir != "" {
		set, err := plantilla.LoadFS(os.DirFS(cfg.Plantillas.Dir))
		if err != nil {
			return err
		}
		if err := st.ImportSet(ctx, set); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"dir":   cfg.Plantillas.Dir,
			"count": set.Len(),
		}).Info("plantillas-server: plantillas imported")
	}
	return nil
}

func replaceCatalogs(ctx context.Context, st *store.Store, catalogs catalog.StaticFetcher) error {
	for table, entries := range catalogs {
		if err := st.ReplaceCatalog(ctx, table, entries); err != nil {
			return err
		}
	}
	return nil
}
