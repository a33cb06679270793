// Package geojson decodes RFC 7946 GeoJSON documents into the primitives of
// package geometry and encodes primitives back to GeoJSON text.
//
// Decoding validates the document against a bundled structural contract for
// its declared type, then dispatches on the type to a builder:
//
//   - Point, MultiPoint           -> Point2D / Point3D (or vectors)
//   - LineString, MultiLineString -> LineSegment or Polyline
//   - Polygon, MultiPolygon       -> Polygon2D, Face3D or a merged Polyface3D
//   - GeometryCollection          -> flattened sequence of the above
//   - Feature, FeatureCollection  -> Feature values carrying 3D geometry
//
// Every entry point returns a Result; callers check its kind before use.
package geojson

import (
	"fmt"
	"strings"
)

// GeoType is an RFC 7946 object type.
type GeoType int

const (
	TypePoint GeoType = iota + 1
	TypeMultiPoint
	TypeLineString
	TypeMultiLineString
	TypePolygon
	TypeMultiPolygon
	TypeGeometryCollection
	TypeFeature
	TypeFeatureCollection
)

var geoTypeNames = [...]string{
	TypePoint:              "Point",
	TypeMultiPoint:         "MultiPoint",
	TypeLineString:         "LineString",
	TypeMultiLineString:    "MultiLineString",
	TypePolygon:            "Polygon",
	TypeMultiPolygon:       "MultiPolygon",
	TypeGeometryCollection: "GeometryCollection",
	TypeFeature:            "Feature",
	TypeFeatureCollection:  "FeatureCollection",
}

var (
	allTypes = []GeoType{
		TypePoint, TypeMultiPoint, TypeLineString, TypeMultiLineString, TypePolygon, TypeMultiPolygon,
		TypeGeometryCollection, TypeFeature, TypeFeatureCollection,
	}
	geometryTypes = []GeoType{
		TypePoint, TypeMultiPoint, TypeLineString, TypeMultiLineString, TypePolygon, TypeMultiPolygon,
		TypeGeometryCollection,
	}
	pointTypes   = []GeoType{TypePoint, TypeMultiPoint}
	lineTypes    = []GeoType{TypeLineString, TypeMultiLineString}
	polygonTypes = []GeoType{TypePolygon, TypeMultiPolygon}
)

func (t GeoType) String() string {
	if t >= TypePoint && t <= TypeFeatureCollection {
		return geoTypeNames[t]
	}
	return fmt.Sprintf("GeoType(%d)", int(t))
}

// IsMulti reports whether the type decodes to a sequence of primitives.
func (t GeoType) IsMulti() bool {
	return t == TypeMultiPoint || t == TypeMultiLineString || t == TypeMultiPolygon
}

// contract files are keyed by the lower-cased type name
func (t GeoType) schemaName() string {
	return strings.ToLower(t.String())
}

// ParseGeoType converts an RFC 7946 type tag. Tags are case sensitive.
func ParseGeoType(s string) (GeoType, error) {
	for _, t := range allTypes {
		if geoTypeNames[t] == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Keyword is one of the RFC 7946 members read by the decoder.
type Keyword string

const (
	KeyCoordinates Keyword = "coordinates"
	KeyGeometries  Keyword = "geometries"
	KeyGeometry    Keyword = "geometry"
	KeyProperties  Keyword = "properties"
	KeyType        Keyword = "type"
	KeyFeatures    Keyword = "features"
)

type Dimension int

const (
	Dim2 Dimension = 2
	Dim3 Dimension = 3
)

func (d Dimension) String() string {
	if d == Dim3 {
		return "3d"
	}
	return "2d"
}

// ParseDimension accepts "2d", "3d", "2" or "3" in any case.
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2d", "2":
		return Dim2, nil
	case "3d", "3":
		return Dim3, nil
	default:
		return 0, fmt.Errorf("invalid dimension %q (want 2d|3d)", s)
	}
}
