package geojson

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammed-shakir/geojson-geometry/pkg/geometry"
)

func TestEncode_Point(t *testing.T) {
	s, err := Encode(geometry.Point2D{X: 1.5, Y: -2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Point","coordinates":[1.5,-2]}`, s)
}

func TestEncode_RoundTrip(t *testing.T) {
	poly, err := geometry.NewPolygon2D([]geometry.Point2D{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 2}, {X: 0, Y: 2}})
	require.NoError(t, err)
	face, err := geometry.NewFace3D([]geometry.Point3D{{X: 0, Y: 0, Z: 1}, {X: 3, Y: 0, Z: 1}, {X: 3, Y: 2, Z: 1}}, nil)
	require.NoError(t, err)

	cases := []struct {
		name string
		g    geometry.Geometry
		dim  Dimension
	}{
		{"point2d", geometry.Point2D{X: 125.6, Y: 10.1}, Dim2},
		{"point3d", geometry.Point3D{X: 1, Y: 2, Z: 3}, Dim3},
		{"segment2d", geometry.LineSegment2D{Start: geometry.Point2D{X: 0, Y: 0}, End: geometry.Point2D{X: 4, Y: 1}}, Dim2},
		{"segment3d", geometry.LineSegment3D{Start: geometry.Point3D{Z: 2}, End: geometry.Point3D{X: 1, Y: 1, Z: 2}}, Dim3},
		{"polygon2d", poly, Dim2},
		{"face3d", face, Dim3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Encode(tc.g)
			require.NoError(t, err)
			r := DecodeString(s, NewOptions(), tc.dim)
			require.True(t, r.OK(), r.ErrorText())
			assert.Equal(t, tc.g, singleOf(t, r))
		})
	}
}

func TestEncode_PromotedPointUsesDefaultZ(t *testing.T) {
	s, err := Encode(geometry.Point2D{X: 1, Y: 2})
	require.NoError(t, err)
	r := DecodeString(s, NewOptions(WithZ(9)), Dim3)
	assert.Equal(t, geometry.Point3D{X: 1, Y: 2, Z: 9}, singleOf(t, r))
}

func TestEncode_MeshAndPolyface(t *testing.T) {
	r := DecodeString(adjacentSquares, NewOptions(WithMergeFaces(true)), Dim3)
	pf := singleOf(t, r)

	s, err := Encode(pf)
	require.NoError(t, err)
	back := DecodeString(s, NewOptions(), Dim3)
	require.True(t, back.OK(), back.ErrorText())
	assert.Len(t, back.Geometries(), 2)

	mesh := geometry.Mesh2D{
		Vertices: []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		Faces:    [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
	s, err = Encode(mesh)
	require.NoError(t, err)
	back = DecodeString(s, NewOptions(), Dim2)
	require.True(t, back.OK(), back.ErrorText())
	assert.Len(t, back.Geometries(), 2)
	assert.Equal(t, geometry.KindPolygon2D, back.Geometries()[0].Kind())
}

func TestEncode_Unsupported(t *testing.T) {
	_, err := Encode(nil)
	assert.Error(t, err)
}

func TestFromArc2D(t *testing.T) {
	circle := geometry.NewCircle2D(geometry.Point2D{X: 0, Y: 0}, 2)
	s, err := FromArc2D(circle, 16, true)
	require.NoError(t, err)

	r := DecodeString(s, NewOptions(), Dim2)
	p, ok := singleOf(t, r).(geometry.Polygon2D)
	require.True(t, ok)
	assert.Len(t, p.Boundary, 16)
	assert.InDelta(t, 2*16*math.Sin(math.Pi/16)*math.Cos(math.Pi/16)*2, p.Area(), 1e-9)

	half := geometry.Arc2D{Center: geometry.Point2D{}, Radius: 1, A1: 0, A2: math.Pi / 2}
	s, err = FromArc2D(half, 4, true)
	require.NoError(t, err)
	pl, ok := singleOf(t, ToPolyline2D(mustParse(t, s), NewOptions())).(geometry.Polyline2D)
	require.True(t, ok)
	assert.Len(t, pl.Vertices, 5)

	_, err = FromArc2D(half, 1, false)
	assert.Error(t, err)
}

func TestEncodeFeature_RoundTrip(t *testing.T) {
	doc := `{"type":"Feature","id":"a","properties":{"name":"x"},
		"geometry":{"type":"LineString","coordinates":[[0,0,1],[1,0,1],[1,1,1]]}}`
	f := featureOf(t, DecodeString(doc, NewOptions(), Dim3))

	b, err := EncodeFeature(f)
	require.NoError(t, err)

	again := featureOf(t, DecodeString(string(b), NewOptions(), Dim3))
	assert.Equal(t, f.Properties(), again.Properties())
	assert.Equal(t, "a", again.ID())
	g1, _ := f.Geometry()
	g2, _ := again.Geometry()
	assert.Equal(t, g1, g2)
}

func TestEncodeFeatures(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"n":1},"geometry":{"type":"Point","coordinates":[1,2,3]}},
		{"type":"Feature","properties":{"n":2},"geometry":{"type":"MultiPoint","coordinates":[[1,2,3],[4,5,6]]}}
	]}`
	r := DecodeString(doc, NewOptions(), Dim3)
	fs, ok := r.Features()
	require.True(t, ok)

	b, err := EncodeFeatures(fs)
	require.NoError(t, err)

	back := DecodeString(string(b), NewOptions(), Dim3)
	require.True(t, back.OK(), back.ErrorText())
	out, _ := back.Features()
	require.Len(t, out, 2)
	g, ok := out[1].Geometry()
	require.True(t, ok)
	assert.Equal(t, []geometry.Geometry{
		geometry.Point3D{X: 1, Y: 2, Z: 3},
		geometry.Point3D{X: 4, Y: 5, Z: 6},
	}, g.Geometries())
}
