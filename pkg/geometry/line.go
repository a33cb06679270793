package geometry

import "fmt"

type LineSegment2D struct {
	Start Point2D
	End   Point2D
}

type LineSegment3D struct {
	Start Point3D
	End   Point3D
}

// Polyline2D is an open chain of at least three vertices. Interpolated marks
// the polyline for smooth rendering; it never changes the vertex list.
type Polyline2D struct {
	Vertices     []Point2D
	Interpolated bool
}

type Polyline3D struct {
	Vertices     []Point3D
	Interpolated bool
}

func (LineSegment2D) Kind() Kind { return KindLineSegment2D }
func (LineSegment3D) Kind() Kind { return KindLineSegment3D }
func (Polyline2D) Kind() Kind    { return KindPolyline2D }
func (Polyline3D) Kind() Kind    { return KindPolyline3D }

func (s LineSegment2D) Length() float64 { return s.Start.DistanceTo(s.End) }
func (s LineSegment3D) Length() float64 { return s.Start.DistanceTo(s.End) }

func NewPolyline2D(vertices []Point2D, interpolated bool) (Polyline2D, error) {
	if len(vertices) < 3 {
		return Polyline2D{}, fmt.Errorf("polyline2d: %w (got %d, want >= 3)", ErrTooFewVertices, len(vertices))
	}
	return Polyline2D{Vertices: vertices, Interpolated: interpolated}, nil
}

func NewPolyline3D(vertices []Point3D, interpolated bool) (Polyline3D, error) {
	if len(vertices) < 3 {
		return Polyline3D{}, fmt.Errorf("polyline3d: %w (got %d, want >= 3)", ErrTooFewVertices, len(vertices))
	}
	return Polyline3D{Vertices: vertices, Interpolated: interpolated}, nil
}

func (p Polyline2D) Length() float64 {
	var l float64
	for i := 0; i+1 < len(p.Vertices); i++ {
		l += p.Vertices[i].DistanceTo(p.Vertices[i+1])
	}
	return l
}

func (p Polyline3D) Length() float64 {
	var l float64
	for i := 0; i+1 < len(p.Vertices); i++ {
		l += p.Vertices[i].DistanceTo(p.Vertices[i+1])
	}
	return l
}

// Segments splits the polyline into consecutive segments.
func (p Polyline3D) Segments() []LineSegment3D {
	if len(p.Vertices) < 2 {
		return nil
	}
	out := make([]LineSegment3D, 0, len(p.Vertices)-1)
	for i := 0; i+1 < len(p.Vertices); i++ {
		out = append(out, LineSegment3D{Start: p.Vertices[i], End: p.Vertices[i+1]})
	}
	return out
}
