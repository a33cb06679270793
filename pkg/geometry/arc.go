package geometry

import (
	"fmt"
	"math"
)

// Arc2D runs counter-clockwise from A1 to A2 (radians) around Center.
type Arc2D struct {
	Center Point2D
	Radius float64
	A1     float64
	A2     float64
}

func (Arc2D) Kind() Kind { return KindArc2D }

// NewCircle2D returns a full-turn arc.
func NewCircle2D(center Point2D, radius float64) Arc2D {
	return Arc2D{Center: center, Radius: radius, A1: 0, A2: 2 * math.Pi}
}

func (a Arc2D) IsCircle() bool {
	return a.A2-a.A1 >= 2*math.Pi-1e-12
}

func (a Arc2D) PointAt(angle float64) Point2D {
	return Point2D{
		X: a.Center.X + a.Radius*math.Cos(angle),
		Y: a.Center.Y + a.Radius*math.Sin(angle),
	}
}

// ToPolyline divides the arc into segments. A circle yields divisions
// distinct vertices with no repeated closing vertex.
func (a Arc2D) ToPolyline(divisions int) (Polyline2D, error) {
	if divisions < 2 {
		return Polyline2D{}, fmt.Errorf("arc2d: divisions must be >= 2 (got %d)", divisions)
	}
	step := (a.A2 - a.A1) / float64(divisions)
	n := divisions + 1
	if a.IsCircle() {
		n = divisions
	}
	verts := make([]Point2D, n)
	for i := range verts {
		verts[i] = a.PointAt(a.A1 + float64(i)*step)
	}
	return NewPolyline2D(verts, false)
}
