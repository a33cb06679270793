// Package server exposes the decoder over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mohammed-shakir/geojson-geometry/internal/config"
	"github.com/mohammed-shakir/geojson-geometry/internal/health"
	"github.com/mohammed-shakir/geojson-geometry/internal/logger"
	"github.com/mohammed-shakir/geojson-geometry/internal/middleware"
	"github.com/mohammed-shakir/geojson-geometry/internal/observability"
	"github.com/mohammed-shakir/geojson-geometry/internal/service"
	"github.com/mohammed-shakir/geojson-geometry/pkg/geojson"
)

type Decoder interface {
	Decode(ctx context.Context, req service.Request) (service.Response, error)
}

// DocumentStore serves results stored by the ingest worker.
type DocumentStore interface {
	MGet(ctx context.Context, keys []string) (map[string][]byte, error)
}

type Deps struct {
	Decoder      Decoder
	Documents    DocumentStore // optional
	Base         config.DecodeOptions
	DefaultDim   geojson.Dimension
	MaxBodyBytes int64
	MetricsPath  string
	Metrics      http.Handler
	Observe      *observability.Metrics
	Ready        map[string]health.Checker
	Log          zerolog.Logger
}

func NewRouter(d Deps) http.Handler {
	if d.MaxBodyBytes <= 0 {
		d.MaxBodyBytes = 8 << 20
	}
	sl := logSlog(d.Log)

	r := chi.NewRouter()
	r.Use(middleware.Recover(sl))
	r.Use(middleware.Logging(sl, d.Observe))
	r.Use(middleware.CORS())

	r.Get("/healthz", health.Liveness())
	r.Get("/readyz", health.Readiness(2*time.Second, d.Ready))
	if d.Metrics != nil {
		path := d.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, d.Metrics)
	}

	h := &handlers{deps: d}
	r.Route("/v1", func(r chi.Router) {
		r.Post("/decode", h.decode)
		r.Get("/documents", h.documents)
	})
	return r
}

// Run serves h on addr until ctx is canceled.
func Run(ctx context.Context, addr string, h http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http listen")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func logSlog(zl zerolog.Logger) *slog.Logger {
	return logger.NewSlog(&zl)
}
