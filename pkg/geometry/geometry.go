// Package geometry holds the 2D and 3D primitives produced by the GeoJSON decoder:
// points, vectors, segments, polylines, polygons, planar faces, polyfaces and meshes.
package geometry

import "errors"

var (
	ErrTooFewVertices = errors.New("geometry: too few vertices")
	ErrDimension      = errors.New("geometry: coordinate needs 2 or 3 values")
	ErrNoFaces        = errors.New("geometry: no faces to merge")
	ErrNotManifold    = errors.New("geometry: faces share an edge more than twice")
	ErrDisconnected   = errors.New("geometry: faces are not connected within tolerance")
	ErrTriangulation  = errors.New("geometry: polygon could not be triangulated")
)

type Kind int

const (
	KindUnknown Kind = iota
	KindVector2D
	KindPoint2D
	KindLineSegment2D
	KindPolyline2D
	KindPolygon2D
	KindMesh2D
	KindArc2D
	KindVector3D
	KindPoint3D
	KindLineSegment3D
	KindPolyline3D
	KindFace3D
	KindPolyface3D
	KindMesh3D
)

var kindNames = map[Kind]string{
	KindVector2D:      "Vector2D",
	KindPoint2D:       "Point2D",
	KindLineSegment2D: "LineSegment2D",
	KindPolyline2D:    "Polyline2D",
	KindPolygon2D:     "Polygon2D",
	KindMesh2D:        "Mesh2D",
	KindArc2D:         "Arc2D",
	KindVector3D:      "Vector3D",
	KindPoint3D:       "Point3D",
	KindLineSegment3D: "LineSegment3D",
	KindPolyline3D:    "Polyline3D",
	KindFace3D:        "Face3D",
	KindPolyface3D:    "Polyface3D",
	KindMesh3D:        "Mesh3D",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Is3D reports whether values of this kind live in 3D space.
func (k Kind) Is3D() bool {
	return k >= KindVector3D
}

// Geometry is implemented by every primitive in this package.
type Geometry interface {
	Kind() Kind
}
