package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammed-shakir/geojson-geometry/pkg/geojson"
)

func decode(t *testing.T, doc string, dim geojson.Dimension) Body {
	t.Helper()
	b, err := Result(geojson.DecodeString(doc, geojson.NewOptions(), dim), dim)
	require.NoError(t, err)
	return b
}

func TestResult_Single(t *testing.T) {
	b := decode(t, `{"type":"Point","coordinates":[125.6,10.1]}`, geojson.Dim2)
	assert.Equal(t, "single", b.Kind)
	assert.Equal(t, "2d", b.Dimension)
	require.Len(t, b.Geometries, 1)
	assert.Equal(t, "Point2D", b.Geometries[0].Type)
	assert.JSONEq(t, `{"type":"Point","coordinates":[125.6,10.1]}`, string(b.Geometries[0].GeoJSON))
}

func TestResult_Sequence(t *testing.T) {
	b := decode(t, `{"type":"MultiPoint","coordinates":[[1,2],[3,4]]}`, geojson.Dim3)
	assert.Equal(t, "sequence", b.Kind)
	require.Len(t, b.Geometries, 2)
	assert.Equal(t, "Point3D", b.Geometries[1].Type)
	assert.JSONEq(t, `{"type":"Point","coordinates":[3,4,0]}`, string(b.Geometries[1].GeoJSON))
}

func TestResult_Error(t *testing.T) {
	b := decode(t, `{"type":"Circle"}`, geojson.Dim2)
	assert.Equal(t, "error", b.Kind)
	assert.Contains(t, b.Error, "Circle")
	assert.Empty(t, b.Geometries)
}

func TestResult_FeaturesWithReasons(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"n":1},"geometry":{"type":"Point","coordinates":[1,2]}},
		{"type":"Feature","properties":{"n":2},"geometry":null}
	]}`
	b := decode(t, doc, geojson.Dim2)
	assert.Equal(t, "features", b.Kind)
	assert.Equal(t, "3d", b.Dimension)
	require.Contains(t, b.Reasons, 1)
	assert.NotContains(t, b.Reasons, 0)

	var fc struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	require.NoError(t, json.Unmarshal(b.Features, &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Len(t, fc.Features, 2)
}

func TestMarshal_Feature(t *testing.T) {
	doc := `{"type":"Feature","properties":{"name":"a"},"geometry":{"type":"Point","coordinates":[1,2,3]}}`
	raw, err := Marshal(geojson.DecodeString(doc, geojson.NewOptions(), geojson.Dim3), geojson.Dim3)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "feature", out["kind"])
	f := out["feature"].(map[string]any)
	assert.Equal(t, "a", f["properties"].(map[string]any)["name"])
	assert.NotContains(t, out, "reasons")
}
