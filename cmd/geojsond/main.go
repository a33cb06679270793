package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/mohammed-shakir/geojson-geometry/internal/cache/redisstore"
	"github.com/mohammed-shakir/geojson-geometry/internal/cache/resultcache"
	"github.com/mohammed-shakir/geojson-geometry/internal/config"
	"github.com/mohammed-shakir/geojson-geometry/internal/health"
	"github.com/mohammed-shakir/geojson-geometry/internal/ingest"
	"github.com/mohammed-shakir/geojson-geometry/internal/logger"
	"github.com/mohammed-shakir/geojson-geometry/internal/metrics"
	"github.com/mohammed-shakir/geojson-geometry/internal/observability"
	"github.com/mohammed-shakir/geojson-geometry/internal/server"
	"github.com/mohammed-shakir/geojson-geometry/internal/service"
	"github.com/mohammed-shakir/geojson-geometry/pkg/geojson"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.FromEnv()

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   cfg.LogConsole,
		SampleN:   cfg.LogSampleN,
		Component: "geojsond",
	}, os.Stdout)

	if err := cfg.Validate(); err != nil {
		zl.Error().Err(err).Msg("invalid configuration")
		return 2
	}

	base, err := loadBase(cfg.OptionsFile)
	if err != nil {
		zl.Error().Err(err).Msg("load decode options")
		return 2
	}
	defDim, err := geojson.ParseDimension(cfg.Dimension)
	if err != nil {
		zl.Error().Err(err).Msg("invalid default dimension")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := metrics.Init(metrics.Config{
		Component: "geojsond",
		Build: metrics.BuildInfo{
			Version:   Version,
			Revision:  os.Getenv("BUILD_REVISION"),
			BuildDate: os.Getenv("BUILD_DATE"),
		},
	})
	obs := observability.New(p.Registerer())

	deps := server.Deps{
		Base:         base,
		DefaultDim:   defDim,
		MaxBodyBytes: cfg.MaxBodyBytes,
		MetricsPath:  cfg.MetricsPath,
		Metrics:      p.Handler(),
		Observe:      obs,
		Ready:        map[string]health.Checker{},
		Log:          zl,
	}

	var remote resultcache.Remote
	var rc *redisstore.Client
	if cfg.Cache.RedisEnabled {
		rc, err = redisstore.New(ctx, cfg.Cache.RedisAddr, redisstore.WithMetrics(obs))
		if err != nil {
			zl.Error().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("redis unavailable")
			return 1
		}
		defer func() { _ = rc.Close() }()
		remote = rc
		deps.Documents = rc
		deps.Ready["redis"] = rc
	}

	cache := resultcache.New(resultcache.Config{
		Size:      cfg.Cache.LRUSize,
		TTL:       cfg.Cache.TTL,
		OpTimeout: cfg.Cache.OpTimeout,
	}, remote, obs, zl.With().Str("component", "cache").Logger())
	deps.Decoder = service.New(cache, obs, zl)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Ingest.Enabled {
		ingLog := zl.With().Str("component", "ingest").Logger()
		c := ingest.New(ingest.FromConfig(cfg), rc, base.Options(geojson.WithLogger(&ingLog)), defDim, obs, ingLog)
		deps.Ready["ingest"] = c
		g.Go(func() error { return c.Start(gctx) })
	}

	g.Go(func() error { return server.Run(gctx, cfg.Addr, server.NewRouter(deps), zl) })

	zl.Info().
		Str("version", Version).
		Str("addr", cfg.Addr).
		Bool("redis", cfg.Cache.RedisEnabled).
		Bool("ingest", cfg.Ingest.Enabled).
		Msg("geojsond started")

	if err := g.Wait(); err != nil {
		zl.Error().Err(err).Msg("geojsond exited with error")
		return 1
	}
	zl.Info().Msg("geojsond stopped")
	return 0
}

func loadBase(path string) (config.DecodeOptions, error) {
	if path == "" {
		return config.DecodeOptions{}, nil
	}
	o, err := config.LoadOptions(path)
	if err != nil {
		return o, fmt.Errorf("options file: %w", err)
	}
	return o, nil
}

