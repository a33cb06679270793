package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammed-shakir/geojson-geometry/internal/cache/resultcache"
	"github.com/mohammed-shakir/geojson-geometry/pkg/geojson"
)

const line = `{"type":"LineString","coordinates":[[0,0],[1,1],[2,0]]}`

func newDecoder() (*Decoder, *resultcache.Cache) {
	c := resultcache.New(resultcache.Config{Size: 16}, nil, nil, zerolog.Nop())
	return New(c, nil, zerolog.Nop()), c
}

func TestDecode_MissThenHit(t *testing.T) {
	d, c := newDecoder()
	ctx := context.Background()
	req := Request{Body: []byte(line), Options: geojson.NewOptions(), Dim: geojson.Dim2}

	first, err := d.Decode(ctx, req)
	require.NoError(t, err)
	require.True(t, first.OK())
	assert.False(t, first.Cached)
	assert.Contains(t, string(first.Body), `"LineSegment2D"`)
	assert.Equal(t, 1, c.Len())

	second, err := d.Decode(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Body, second.Body)
}

func TestDecode_OptionsAndDimensionSplitCache(t *testing.T) {
	d, c := newDecoder()
	ctx := context.Background()

	for _, req := range []Request{
		{Body: []byte(line), Options: geojson.NewOptions(), Dim: geojson.Dim2},
		{Body: []byte(line), Options: geojson.NewOptions(), Dim: geojson.Dim3},
		{Body: []byte(line), Options: geojson.NewOptions(geojson.WithZ(5)), Dim: geojson.Dim3},
	} {
		res, err := d.Decode(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.Cached)
	}
	assert.Equal(t, 3, c.Len())
}

func TestDecode_FailureNotCached(t *testing.T) {
	d, c := newDecoder()
	ctx := context.Background()

	for _, body := range []string{`{"type":"Circle"}`, `{"type":`} {
		res, err := d.Decode(ctx, Request{Body: []byte(body), Options: geojson.NewOptions(), Dim: geojson.Dim2})
		require.NoError(t, err)
		assert.False(t, res.OK())
		assert.Contains(t, string(res.Body), `"kind":"error"`)
	}
	assert.Equal(t, 0, c.Len())

	res, _ := d.Decode(ctx, Request{Body: []byte(`{"type":`), Options: geojson.NewOptions(), Dim: geojson.Dim2})
	assert.ErrorIs(t, res.Err, geojson.ErrInvalidJSON)
}

func TestDecode_NoCache(t *testing.T) {
	d := New(nil, nil, zerolog.Nop())
	res, err := d.Decode(context.Background(), Request{Body: []byte(line), Options: geojson.NewOptions(), Dim: geojson.Dim3})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Contains(t, string(res.Body), `"LineSegment3D"`)
}
