// Package service runs one decode request end to end: cache lookup, decode,
// render and cache fill.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mohammed-shakir/geojson-geometry/internal/cache/keys"
	"github.com/mohammed-shakir/geojson-geometry/internal/logger"
	"github.com/mohammed-shakir/geojson-geometry/internal/observability"
	"github.com/mohammed-shakir/geojson-geometry/internal/render"
	"github.com/mohammed-shakir/geojson-geometry/pkg/geojson"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte) error
}

type Request struct {
	Body    []byte
	Options geojson.Options
	Dim     geojson.Dimension
}

type Response struct {
	// Body is the rendered JSON, also for failed decodes.
	Body   []byte
	Err    error
	Cached bool
}

func (r Response) OK() bool { return r.Err == nil }

type Decoder struct {
	cache   Cache
	metrics *observability.Metrics
	log     zerolog.Logger
}

// New returns a Decoder. cache may be nil.
func New(cache Cache, m *observability.Metrics, log zerolog.Logger) *Decoder {
	return &Decoder{cache: cache, metrics: m, log: log}
}

// Decode serves req. Decode failures are reported in Response.Err; the
// returned error is for render failures only. Failed decodes are not cached.
func (d *Decoder) Decode(ctx context.Context, req Request) (Response, error) {
	key := keys.Result(req.Body, req.Options.Fingerprint(), req.Dim.String())
	if d.cache != nil {
		if b, ok := d.cache.Get(ctx, key); ok {
			logger.FromContext(logger.WithCacheResult(ctx, "hit"), &d.log).Debug().Str("key", key).Msg("decode served from cache")
			return Response{Body: b, Cached: true}, nil
		}
	}

	start := time.Now()
	res := geojson.DecodeBytes(req.Body, req.Options, req.Dim)
	d.metrics.ObserveDecode(req.Dim.String(), res.Kind().String(), time.Since(start))

	body, err := render.Marshal(res, req.Dim)
	if err != nil {
		return Response{}, fmt.Errorf("render %s result: %w", res.Kind(), err)
	}
	if !res.OK() {
		return Response{Body: body, Err: res.Err()}, nil
	}

	if d.cache != nil {
		// a failed remote write still leaves the local entry
		_ = d.cache.Set(ctx, key, body)
	}
	logger.FromContext(logger.WithCacheResult(ctx, "miss"), &d.log).Debug().
		Str("kind", res.Kind().String()).
		Int("bytes", len(body)).
		Msg("decoded")
	return Response{Body: body}, nil
}
