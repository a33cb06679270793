package geojson

import (
	"errors"
	"fmt"

	"github.com/mohammed-shakir/geojson-geometry/pkg/geometry"
)

// Builders turn destructured coordinates into primitives. They are pure:
// no validation beyond what the primitive constructors enforce.

func vector2D(c []float64) geometry.Vector2D {
	return geometry.Vector2D{X: c[0], Y: c[1]}
}

func point2D(c []float64) geometry.Point2D {
	return geometry.Point2D{X: c[0], Y: c[1]}
}

func point3D(c []float64, z float64) geometry.Point3D {
	if len(c) >= 3 {
		z = c[2]
	}
	return geometry.Point3D{X: c[0], Y: c[1], Z: z}
}

func vector3D(c []float64, z float64) geometry.Vector3D {
	p := point3D(c, z)
	return geometry.Vector3D{X: p.X, Y: p.Y, Z: p.Z}
}

func points2D(cs [][]float64) []geometry.Point2D {
	out := make([]geometry.Point2D, len(cs))
	for i, c := range cs {
		out[i] = point2D(c)
	}
	return out
}

func points3D(cs [][]float64, z float64) []geometry.Point3D {
	out := make([]geometry.Point3D, len(cs))
	for i, c := range cs {
		out[i] = point3D(c, z)
	}
	return out
}

// lineSegment2D collapses any line to its endpoints.
func lineSegment2D(cs [][]float64) (geometry.LineSegment2D, error) {
	if len(cs) < 2 {
		return geometry.LineSegment2D{}, fmt.Errorf("line segment: %w (got %d, want >= 2)", geometry.ErrTooFewVertices, len(cs))
	}
	return geometry.LineSegment2D{Start: point2D(cs[0]), End: point2D(cs[len(cs)-1])}, nil
}

func lineSegment3D(cs [][]float64, z float64) (geometry.LineSegment3D, error) {
	if len(cs) < 2 {
		return geometry.LineSegment3D{}, fmt.Errorf("line segment: %w (got %d, want >= 2)", geometry.ErrTooFewVertices, len(cs))
	}
	return geometry.LineSegment3D{Start: point3D(cs[0], z), End: point3D(cs[len(cs)-1], z)}, nil
}

// polyline2D yields a segment for two positions and a polyline otherwise.
func polyline2D(cs [][]float64, interpolated bool) (geometry.Geometry, error) {
	if len(cs) == 2 {
		return lineSegment2D(cs)
	}
	return geometry.NewPolyline2D(points2D(cs), interpolated)
}

func polyline3D(cs [][]float64, interpolated bool, z float64) (geometry.Geometry, error) {
	if len(cs) == 2 {
		return lineSegment3D(cs, z)
	}
	return geometry.NewPolyline3D(points3D(cs, z), interpolated)
}

// polygon2D treats the first ring as the boundary and the rest as holes.
func polygon2D(rings [][][]float64) (geometry.Polygon2D, error) {
	if len(rings) == 0 {
		return geometry.Polygon2D{}, fmt.Errorf("%w: polygon has no rings", ErrStructure)
	}
	var holes [][]geometry.Point2D
	for _, r := range rings[1:] {
		holes = append(holes, points2D(openRing(r)))
	}
	return geometry.NewPolygon2DWithHoles(points2D(openRing(rings[0])), holes)
}

func face3D(rings [][][]float64, z float64) (geometry.Face3D, error) {
	if len(rings) == 0 {
		return geometry.Face3D{}, fmt.Errorf("%w: polygon has no rings", ErrStructure)
	}
	var holes [][]geometry.Point3D
	for _, r := range rings[1:] {
		holes = append(holes, points3D(openRing(r), z))
	}
	return geometry.NewFace3D(points3D(openRing(rings[0]), z), holes)
}

// mergeOrKeep joins the faces of a MultiPolygon into one polyface when
// merging is on. A failed merge is not an error: the faces are returned as
// they are.
func mergeOrKeep(faces []geometry.Face3D, opts Options) Result {
	if opts.MergeFaces() {
		pf, err := geometry.PolyfaceFromFaces(faces, opts.Tolerance())
		if err == nil {
			return single(pf)
		}
		ev := opts.Logger().Debug().Err(err).Int("faces", len(faces))
		if errors.Is(err, geometry.ErrDisconnected) {
			ev = ev.Str("reason", "disconnected")
		}
		ev.Msg("face merge failed, keeping separate faces")
	}
	out := make([]geometry.Geometry, len(faces))
	for i, f := range faces {
		out[i] = f
	}
	return sequence(out)
}
