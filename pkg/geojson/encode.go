package geojson

import (
	"fmt"
	"strconv"

	geom "github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"

	"github.com/mohammed-shakir/geojson-geometry/pkg/geometry"
)

// arcDivisions is used when an Arc2D is encoded without an explicit count.
const arcDivisions = 32

// Encode writes a primitive as a GeoJSON geometry object. Meshes and
// polyfaces become MultiPolygons of their faces.
func Encode(g geometry.Geometry) (string, error) {
	t, err := toGeom(g)
	if err != nil {
		return "", err
	}
	b, err := geomjson.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", g.Kind(), err)
	}
	return string(b), nil
}

// EncodeFeature writes a decoded Feature back to GeoJSON. Sequence
// geometries become a GeometryCollection.
func EncodeFeature(f Feature) ([]byte, error) {
	gf, err := toGeomFeature(f)
	if err != nil {
		return nil, err
	}
	return gf.MarshalJSON()
}

func EncodeFeatures(fs []Feature) ([]byte, error) {
	fc := &geomjson.FeatureCollection{Features: make([]*geomjson.Feature, 0, len(fs))}
	for i, f := range fs {
		gf, err := toGeomFeature(f)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		fc.Features = append(fc.Features, gf)
	}
	return fc.MarshalJSON()
}

// FromArc2D approximates an arc with divisions segments. Circles become a
// Polygon and open arcs a LineString. With validate set the output is
// checked against the contract of its type.
func FromArc2D(arc geometry.Arc2D, divisions int, validate bool) (string, error) {
	t, err := arcGeom(arc, divisions)
	if err != nil {
		return "", err
	}
	b, err := geomjson.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("marshal arc: %w", err)
	}
	if validate {
		doc, err := ParseBytes(b)
		if err != nil {
			return "", err
		}
		if out := Validate(doc, []GeoType{TypeLineString, TypePolygon}, true); !out.Selected {
			return "", out.Err
		}
	}
	return string(b), nil
}

func toGeomFeature(f Feature) (*geomjson.Feature, error) {
	gf := &geomjson.Feature{Properties: f.properties}
	switch id := f.id.(type) {
	case string:
		gf.ID = id
	case float64:
		gf.ID = strconv.FormatFloat(id, 'f', -1, 64)
	}
	if !f.hasGeom {
		return gf, nil
	}
	if r, ok := f.geometry.Single(); ok {
		t, err := toGeom(r)
		if err != nil {
			return nil, err
		}
		gf.Geometry = t
		return gf, nil
	}
	gc := geom.NewGeometryCollection()
	for _, g := range f.geometry.Geometries() {
		t, err := toGeom(g)
		if err != nil {
			return nil, err
		}
		if err := gc.Push(t); err != nil {
			return nil, err
		}
	}
	gf.Geometry = gc
	return gf, nil
}

func coord2(p geometry.Point2D) geom.Coord { return geom.Coord{p.X, p.Y} }
func coord3(p geometry.Point3D) geom.Coord { return geom.Coord{p.X, p.Y, p.Z} }

func ring2(pts []geometry.Point2D) []geom.Coord {
	out := make([]geom.Coord, 0, len(pts)+1)
	for _, p := range pts {
		out = append(out, coord2(p))
	}
	if len(pts) > 0 {
		out = append(out, coord2(pts[0]))
	}
	return out
}

func ring3(pts []geometry.Point3D) []geom.Coord {
	out := make([]geom.Coord, 0, len(pts)+1)
	for _, p := range pts {
		out = append(out, coord3(p))
	}
	if len(pts) > 0 {
		out = append(out, coord3(pts[0]))
	}
	return out
}

func faceRings(f geometry.Face3D) [][]geom.Coord {
	rings := [][]geom.Coord{ring3(f.Boundary)}
	for _, h := range f.Holes {
		rings = append(rings, ring3(h))
	}
	return rings
}

func toGeom(g geometry.Geometry) (geom.T, error) {
	switch v := g.(type) {
	case geometry.Point2D:
		return geom.NewPoint(geom.XY).SetCoords(coord2(v))
	case geometry.Vector2D:
		return geom.NewPoint(geom.XY).SetCoords(geom.Coord{v.X, v.Y})
	case geometry.Point3D:
		return geom.NewPoint(geom.XYZ).SetCoords(coord3(v))
	case geometry.Vector3D:
		return geom.NewPoint(geom.XYZ).SetCoords(geom.Coord{v.X, v.Y, v.Z})
	case geometry.LineSegment2D:
		return geom.NewLineString(geom.XY).SetCoords([]geom.Coord{coord2(v.Start), coord2(v.End)})
	case geometry.LineSegment3D:
		return geom.NewLineString(geom.XYZ).SetCoords([]geom.Coord{coord3(v.Start), coord3(v.End)})
	case geometry.Polyline2D:
		cs := make([]geom.Coord, len(v.Vertices))
		for i, p := range v.Vertices {
			cs[i] = coord2(p)
		}
		return geom.NewLineString(geom.XY).SetCoords(cs)
	case geometry.Polyline3D:
		cs := make([]geom.Coord, len(v.Vertices))
		for i, p := range v.Vertices {
			cs[i] = coord3(p)
		}
		return geom.NewLineString(geom.XYZ).SetCoords(cs)
	case geometry.Polygon2D:
		rings := [][]geom.Coord{ring2(v.Boundary)}
		for _, h := range v.Holes {
			rings = append(rings, ring2(h))
		}
		return geom.NewPolygon(geom.XY).SetCoords(rings)
	case geometry.Face3D:
		return geom.NewPolygon(geom.XYZ).SetCoords(faceRings(v))
	case geometry.Polyface3D:
		polys := make([][][]geom.Coord, len(v.Faces))
		for i, f := range v.Faces {
			polys[i] = faceRings(f)
		}
		return geom.NewMultiPolygon(geom.XYZ).SetCoords(polys)
	case geometry.Mesh2D:
		polys := make([][][]geom.Coord, len(v.Faces))
		for i, tri := range v.Faces {
			polys[i] = [][]geom.Coord{ring2([]geometry.Point2D{v.Vertices[tri[0]], v.Vertices[tri[1]], v.Vertices[tri[2]]})}
		}
		return geom.NewMultiPolygon(geom.XY).SetCoords(polys)
	case geometry.Mesh3D:
		polys := make([][][]geom.Coord, len(v.Faces))
		for i, tri := range v.Faces {
			polys[i] = [][]geom.Coord{ring3([]geometry.Point3D{v.Vertices[tri[0]], v.Vertices[tri[1]], v.Vertices[tri[2]]})}
		}
		return geom.NewMultiPolygon(geom.XYZ).SetCoords(polys)
	case geometry.Arc2D:
		return arcGeom(v, arcDivisions)
	case nil:
		return nil, fmt.Errorf("encode: nil geometry")
	default:
		return nil, fmt.Errorf("encode: unsupported geometry %s", g.Kind())
	}
}

func arcGeom(arc geometry.Arc2D, divisions int) (geom.T, error) {
	pl, err := arc.ToPolyline(divisions)
	if err != nil {
		return nil, err
	}
	if arc.IsCircle() {
		return geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{ring2(pl.Vertices)})
	}
	cs := make([]geom.Coord, len(pl.Vertices))
	for i, p := range pl.Vertices {
		cs[i] = coord2(p)
	}
	return geom.NewLineString(geom.XY).SetCoords(cs)
}
