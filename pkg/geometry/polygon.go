package geometry

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Polygon2D is an open boundary ring (no repeated closing vertex) with
// optional open hole rings.
type Polygon2D struct {
	Boundary []Point2D
	Holes    [][]Point2D
}

func (Polygon2D) Kind() Kind { return KindPolygon2D }

func NewPolygon2D(boundary []Point2D) (Polygon2D, error) {
	if len(boundary) < 3 {
		return Polygon2D{}, fmt.Errorf("polygon2d boundary: %w (got %d, want >= 3)", ErrTooFewVertices, len(boundary))
	}
	return Polygon2D{Boundary: boundary}, nil
}

func NewPolygon2DWithHoles(boundary []Point2D, holes [][]Point2D) (Polygon2D, error) {
	p, err := NewPolygon2D(boundary)
	if err != nil {
		return Polygon2D{}, err
	}
	for i, h := range holes {
		if len(h) < 3 {
			return Polygon2D{}, fmt.Errorf("polygon2d hole %d: %w (got %d, want >= 3)", i, ErrTooFewVertices, len(h))
		}
	}
	if len(holes) > 0 {
		p.Holes = holes
	}
	return p, nil
}

func (p Polygon2D) HasHoles() bool { return len(p.Holes) > 0 }

// Area is the boundary area minus the hole areas.
func (p Polygon2D) Area() float64 {
	return planar.Area(p.orb())
}

// IsClockwise reports the winding of the boundary ring.
func (p Polygon2D) IsClockwise() bool {
	return ringOrientation(p.Boundary) == orb.CW
}

// Contains reports whether pt lies inside the boundary and outside every hole.
func (p Polygon2D) Contains(pt Point2D) bool {
	return planar.PolygonContains(p.orb(), orb.Point{pt.X, pt.Y})
}

func (p Polygon2D) Triangulate() (Mesh2D, error) {
	tris, err := triangulate(p.Boundary, p.Holes)
	if err != nil {
		return Mesh2D{}, err
	}
	verts := make([]Point2D, 0, len(p.Boundary))
	verts = append(verts, p.Boundary...)
	for _, h := range p.Holes {
		verts = append(verts, h...)
	}
	return Mesh2D{Vertices: verts, Faces: tris}, nil
}

func (p Polygon2D) orb() orb.Polygon {
	poly := make(orb.Polygon, 0, 1+len(p.Holes))
	poly = append(poly, closedRing(p.Boundary))
	for _, h := range p.Holes {
		poly = append(poly, closedRing(h))
	}
	return poly
}

func closedRing(pts []Point2D) orb.Ring {
	r := make(orb.Ring, 0, len(pts)+1)
	for _, pt := range pts {
		r = append(r, orb.Point{pt.X, pt.Y})
	}
	if len(r) > 0 && !r[0].Equal(r[len(r)-1]) {
		r = append(r, r[0])
	}
	return r
}

func ringOrientation(pts []Point2D) orb.Orientation {
	if len(pts) < 3 {
		return 0
	}
	return closedRing(pts).Orientation()
}
