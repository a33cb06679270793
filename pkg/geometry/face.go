package geometry

import (
	"fmt"
	"math"
)

// Plane is an origin with a unit normal.
type Plane struct {
	Origin Point3D
	Normal Vector3D
}

// XAxis is a unit vector lying in the plane, used for 2D projection.
func (pl Plane) XAxis() Vector3D {
	n := pl.Normal.Normalize()
	if math.Abs(n.Z) > 1-1e-9 {
		return Vector3D{X: 1}
	}
	return Vector3D{X: n.Y, Y: -n.X}.Normalize()
}

func (pl Plane) YAxis() Vector3D {
	return pl.Normal.Normalize().Cross(pl.XAxis())
}

// Project maps a 3D point to plane coordinates relative to Origin.
func (pl Plane) Project(p Point3D) Point2D {
	v := p.Sub(pl.Origin)
	return Point2D{X: v.Dot(pl.XAxis()), Y: v.Dot(pl.YAxis())}
}

// Face3D is a planar polygon in 3D space. Boundary and holes are open rings.
type Face3D struct {
	Boundary []Point3D
	Holes    [][]Point3D
	Plane    Plane
}

func (Face3D) Kind() Kind { return KindFace3D }

// NewFace3D builds a face whose plane passes through the first boundary
// vertex. The normal follows the boundary winding; degenerate rings fall
// back to +Z.
func NewFace3D(boundary []Point3D, holes [][]Point3D) (Face3D, error) {
	if len(boundary) < 3 {
		return Face3D{}, fmt.Errorf("face3d boundary: %w (got %d, want >= 3)", ErrTooFewVertices, len(boundary))
	}
	for i, h := range holes {
		if len(h) < 3 {
			return Face3D{}, fmt.Errorf("face3d hole %d: %w (got %d, want >= 3)", i, ErrTooFewVertices, len(h))
		}
	}
	f := Face3D{
		Boundary: boundary,
		Plane:    Plane{Origin: boundary[0], Normal: newellNormal(boundary)},
	}
	if len(holes) > 0 {
		f.Holes = holes
	}
	return f, nil
}

func (f Face3D) HasHoles() bool { return len(f.Holes) > 0 }

// Vertices returns boundary vertices followed by hole vertices.
func (f Face3D) Vertices() []Point3D {
	n := len(f.Boundary)
	for _, h := range f.Holes {
		n += len(h)
	}
	out := make([]Point3D, 0, n)
	out = append(out, f.Boundary...)
	for _, h := range f.Holes {
		out = append(out, h...)
	}
	return out
}

// Area of the face measured in its plane.
func (f Face3D) Area() float64 {
	return f.polygon2D().Area()
}

// TriangulatedMesh2D triangulates the face in plane coordinates.
func (f Face3D) TriangulatedMesh2D() (Mesh2D, error) {
	return f.polygon2D().Triangulate()
}

// TriangulatedMesh3D triangulates the face and keeps the original 3D vertices.
func (f Face3D) TriangulatedMesh3D() (Mesh3D, error) {
	m2, err := f.TriangulatedMesh2D()
	if err != nil {
		return Mesh3D{}, fmt.Errorf("face3d: %w", err)
	}
	return Mesh3D{Vertices: f.Vertices(), Faces: m2.Faces}, nil
}

func (f Face3D) polygon2D() Polygon2D {
	proj := func(ring []Point3D) []Point2D {
		out := make([]Point2D, len(ring))
		for i, p := range ring {
			out[i] = f.Plane.Project(p)
		}
		return out
	}
	p := Polygon2D{Boundary: proj(f.Boundary)}
	for _, h := range f.Holes {
		p.Holes = append(p.Holes, proj(h))
	}
	return p
}

func newellNormal(ring []Point3D) Vector3D {
	var n Vector3D
	for i := range ring {
		c := ring[i]
		nx := ring[(i+1)%len(ring)]
		n.X += (c.Y - nx.Y) * (c.Z + nx.Z)
		n.Y += (c.Z - nx.Z) * (c.X + nx.X)
		n.Z += (c.X - nx.X) * (c.Y + nx.Y)
	}
	if n.Magnitude() == 0 {
		return Vector3D{Z: 1}
	}
	return n.Normalize()
}
