package geojson

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mohammed-shakir/geojson-geometry/pkg/geometry"
)

// Decode validates doc against every GeoJSON type and builds the matching
// primitives in the requested dimension. Features always carry 3D geometry.
func Decode(doc Document, opts Options, dim Dimension) Result {
	return decodeAs(doc, allTypes, opts, dim)
}

// DecodeString parses text and decodes it.
func DecodeString(text string, opts Options, dim Dimension) Result {
	doc, err := Parse(text)
	if err != nil {
		return failure(err)
	}
	return Decode(doc, opts, dim)
}

// DecodeBytes parses b and decodes it.
func DecodeBytes(b []byte, opts Options, dim Dimension) Result {
	doc, err := ParseBytes(b)
	if err != nil {
		return failure(err)
	}
	return Decode(doc, opts, dim)
}

// DecodeFile reads and decodes the file at path. A missing file yields an
// empty sequence rather than an error.
func DecodeFile(path string, opts Options, dim Dimension) Result {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return sequence(nil)
	}
	if err != nil {
		return failure(fmt.Errorf("read %s: %w", path, err))
	}
	return DecodeBytes(b, opts, dim)
}

func decodeAs(doc Document, candidates []GeoType, opts Options, dim Dimension) Result {
	out := Validate(doc, candidates, opts.Validate())
	if !out.Selected {
		if f, ok := brokenFeature(doc, out); ok {
			return featureResult(f)
		}
		return failure(out.Err)
	}
	child := opts.Child()
	switch out.Type {
	case TypeFeature:
		return featureResult(assembleFeature(doc, child, opts.Validate()))
	case TypeFeatureCollection:
		return assembleCollection(doc, child, opts.Validate())
	case TypeLineString, TypeMultiLineString:
		// top-level lines collapse to their endpoints
		return buildSegments(doc, out.Type, child, dim)
	case TypePolygon, TypeMultiPolygon:
		if dim == Dim2 {
			return buildPolygons(doc, out.Type)
		}
	}
	return dispatch(doc, out.Type, child, dim)
}

// dispatch builds a nested, already accepted document of type t: a feature
// geometry or a GeometryCollection member. Lines keep every vertex here and
// fillPolygon turns 2D polygons into faces.
func dispatch(doc Document, t GeoType, opts Options, dim Dimension) Result {
	switch t {
	case TypeFeature:
		return featureResult(assembleFeature(doc, opts, false))
	case TypeFeatureCollection:
		return assembleCollection(doc, opts, false)
	case TypeGeometryCollection:
		return buildCollection(doc, opts, dim)
	case TypePoint, TypeMultiPoint:
		return buildPoints(doc, t, opts, dim)
	case TypeLineString, TypeMultiLineString:
		return buildLines(doc, t, opts, dim)
	case TypePolygon, TypeMultiPolygon:
		if dim == Dim3 || opts.FillPolygon() {
			return buildFaces(doc, t, opts)
		}
		return buildPolygons(doc, t)
	}
	return failure(fmt.Errorf("%w: %s", ErrUnknownType, t))
}

func buildPoints(doc Document, t GeoType, opts Options, dim Dimension) Result {
	return buildEach(doc, t, func(c Document, path string) (geometry.Geometry, error) {
		p, err := position(c, path)
		if err != nil {
			return nil, err
		}
		if dim == Dim3 {
			return point3D(p, opts.Z()), nil
		}
		return point2D(p), nil
	})
}

func buildVectors(doc Document, t GeoType, opts Options, dim Dimension) Result {
	return buildEach(doc, t, func(c Document, path string) (geometry.Geometry, error) {
		p, err := position(c, path)
		if err != nil {
			return nil, err
		}
		if dim == Dim3 {
			return vector3D(p, opts.Z()), nil
		}
		return vector2D(p), nil
	})
}

func buildLines(doc Document, t GeoType, opts Options, dim Dimension) Result {
	return buildEach(doc, t, func(c Document, path string) (geometry.Geometry, error) {
		cs, err := lineCoords(c, path)
		if err != nil {
			return nil, err
		}
		if dim == Dim3 {
			return polyline3D(cs, opts.Interpolated(), opts.Z())
		}
		return polyline2D(cs, opts.Interpolated())
	})
}

func buildSegments(doc Document, t GeoType, opts Options, dim Dimension) Result {
	return buildEach(doc, t, func(c Document, path string) (geometry.Geometry, error) {
		cs, err := lineCoords(c, path)
		if err != nil {
			return nil, err
		}
		if dim == Dim3 {
			return lineSegment3D(cs, opts.Z())
		}
		return lineSegment2D(cs)
	})
}

func buildPolygons(doc Document, t GeoType) Result {
	return buildEach(doc, t, func(c Document, path string) (geometry.Geometry, error) {
		rings, err := polygonCoords(c, path)
		if err != nil {
			return nil, err
		}
		return polygon2D(rings)
	})
}

func buildFaces(doc Document, t GeoType, opts Options) Result {
	faces, err := faceList(doc, t, opts)
	if err != nil {
		return failure(err)
	}
	if t == TypePolygon {
		return single(faces[0])
	}
	return mergeOrKeep(faces, opts)
}

func faceList(doc Document, t GeoType, opts Options) ([]geometry.Face3D, error) {
	r := buildEach(doc, t, func(c Document, path string) (geometry.Geometry, error) {
		rings, err := polygonCoords(c, path)
		if err != nil {
			return nil, err
		}
		return face3D(rings, opts.Z())
	})
	if !r.OK() {
		return nil, r.Err()
	}
	gs := r.Geometries()
	faces := make([]geometry.Face3D, len(gs))
	for i, g := range gs {
		faces[i] = g.(geometry.Face3D)
	}
	return faces, nil
}

// buildEach applies build to the coordinates of a single type or to every
// member of a Multi* type.
func buildEach(doc Document, t GeoType, build func(Document, string) (geometry.Geometry, error)) Result {
	c, err := coordinates(doc)
	if err != nil {
		return failure(err)
	}
	if !t.IsMulti() {
		g, err := build(c, "$.coordinates")
		if err != nil {
			return failure(err)
		}
		return single(g)
	}
	gs, err := nested(c, "$.coordinates", 0, build)
	if err != nil {
		return failure(err)
	}
	return sequence(gs)
}

// buildCollection decodes every member of a GeometryCollection and flattens
// Multi* members and nested collections into one sequence.
func buildCollection(doc Document, opts Options, dim Dimension) Result {
	geoms, ok := Field(doc, KeyGeometries)
	if !ok || geoms.Kind() != KindArray {
		return failure(fmt.Errorf("%w: $: %q must be an array", ErrStructure, KeyGeometries))
	}
	var out []geometry.Geometry
	for i, item := range geoms.Array() {
		sel := Validate(item, geometryTypes, false)
		if !sel.Selected {
			return failure(fmt.Errorf("geometries[%d]: %w", i, sel.Err))
		}
		r := dispatch(item, sel.Type, opts, dim)
		if !r.OK() {
			return failure(fmt.Errorf("geometries[%d]: %w", i, r.Err()))
		}
		out = append(out, r.Geometries()...)
	}
	return sequence(out)
}

func selectFor(doc Document, candidates []GeoType, opts Options) (GeoType, error) {
	out := Validate(doc, candidates, opts.Validate())
	if !out.Selected {
		return 0, out.Err
	}
	return out.Type, nil
}

func pointsOf(doc Document, opts Options, dim Dimension, vectors bool) Result {
	t, err := selectFor(doc, pointTypes, opts)
	if err != nil {
		return failure(err)
	}
	if vectors {
		return buildVectors(doc, t, opts, dim)
	}
	return buildPoints(doc, t, opts, dim)
}

// ToVector2D decodes a Point or MultiPoint into Vector2D values.
func ToVector2D(doc Document, opts Options) Result { return pointsOf(doc, opts, Dim2, true) }

// ToVector3D decodes a Point or MultiPoint into Vector3D values.
func ToVector3D(doc Document, opts Options) Result { return pointsOf(doc, opts, Dim3, true) }

// ToPoint2D decodes a Point or MultiPoint into Point2D values.
func ToPoint2D(doc Document, opts Options) Result { return pointsOf(doc, opts, Dim2, false) }

// ToPoint3D decodes a Point or MultiPoint into Point3D values, using the
// configured Z for 2D positions.
func ToPoint3D(doc Document, opts Options) Result { return pointsOf(doc, opts, Dim3, false) }

func linesOf(doc Document, opts Options, dim Dimension, collapse bool) Result {
	t, err := selectFor(doc, lineTypes, opts)
	if err != nil {
		return failure(err)
	}
	if collapse {
		return buildSegments(doc, t, opts, dim)
	}
	return buildLines(doc, t, opts, dim)
}

// ToLineSegment2D keeps only the first and last position of each line.
func ToLineSegment2D(doc Document, opts Options) Result { return linesOf(doc, opts, Dim2, true) }

// ToLineSegment3D keeps only the first and last position of each line.
func ToLineSegment3D(doc Document, opts Options) Result { return linesOf(doc, opts, Dim3, true) }

// ToPolyline2D builds a segment for two positions and a polyline for more.
func ToPolyline2D(doc Document, opts Options) Result { return linesOf(doc, opts, Dim2, false) }

// ToPolyline3D builds a segment for two positions and a polyline for more.
func ToPolyline3D(doc Document, opts Options) Result { return linesOf(doc, opts, Dim3, false) }

// ToPolygon2D decodes a Polygon or MultiPolygon into Polygon2D values.
func ToPolygon2D(doc Document, opts Options) Result {
	t, err := selectFor(doc, polygonTypes, opts)
	if err != nil {
		return failure(err)
	}
	return buildPolygons(doc, t)
}

// ToFace3D decodes a Polygon or MultiPolygon into planar faces. MultiPolygon
// faces are merged into a polyface when requested and possible.
func ToFace3D(doc Document, opts Options) Result {
	t, err := selectFor(doc, polygonTypes, opts)
	if err != nil {
		return failure(err)
	}
	return buildFaces(doc, t, opts)
}

func meshesOf(doc Document, opts Options, dim Dimension) Result {
	t, err := selectFor(doc, polygonTypes, opts)
	if err != nil {
		return failure(err)
	}
	faces, err := faceList(doc, t, opts.withoutMerge())
	if err != nil {
		return failure(err)
	}
	out := make([]geometry.Geometry, len(faces))
	for i, f := range faces {
		var (
			m   geometry.Geometry
			err error
		)
		if dim == Dim3 {
			m, err = f.TriangulatedMesh3D()
		} else {
			m, err = f.TriangulatedMesh2D()
		}
		if err != nil {
			return failure(fmt.Errorf("face %d: %w", i, err))
		}
		out[i] = m
	}
	if t == TypePolygon {
		return single(out[0])
	}
	return sequence(out)
}

// ToMesh2D triangulates each polygon into a mesh in its own plane.
func ToMesh2D(doc Document, opts Options) Result { return meshesOf(doc, opts, Dim2) }

// ToMesh3D triangulates each polygon into a mesh in world coordinates.
func ToMesh3D(doc Document, opts Options) Result { return meshesOf(doc, opts, Dim3) }

func collectionOf(doc Document, opts Options, dim Dimension) Result {
	if _, err := selectFor(doc, []GeoType{TypeGeometryCollection}, opts); err != nil {
		return failure(err)
	}
	return buildCollection(doc, opts.Child(), dim)
}

func ToCollection2D(doc Document, opts Options) Result { return collectionOf(doc, opts, Dim2) }
func ToCollection3D(doc Document, opts Options) Result { return collectionOf(doc, opts, Dim3) }
