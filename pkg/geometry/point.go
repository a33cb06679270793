package geometry

import (
	"fmt"
	"math"
)

type Vector2D struct {
	X float64
	Y float64
}

type Point2D struct {
	X float64
	Y float64
}

type Vector3D struct {
	X float64
	Y float64
	Z float64
}

type Point3D struct {
	X float64
	Y float64
	Z float64
}

func (Vector2D) Kind() Kind { return KindVector2D }
func (Point2D) Kind() Kind  { return KindPoint2D }
func (Vector3D) Kind() Kind { return KindVector3D }
func (Point3D) Kind() Kind  { return KindPoint3D }

// Point2DFromArray reads x and y from the first two values.
func Point2DFromArray(a []float64) (Point2D, error) {
	if len(a) < 2 {
		return Point2D{}, fmt.Errorf("%w (got %d)", ErrDimension, len(a))
	}
	return Point2D{X: a[0], Y: a[1]}, nil
}

// Point3DFromArray reads x, y and z; a 2-value array gets the supplied z.
func Point3DFromArray(a []float64, z float64) (Point3D, error) {
	switch {
	case len(a) < 2:
		return Point3D{}, fmt.Errorf("%w (got %d)", ErrDimension, len(a))
	case len(a) == 2:
		return Point3D{X: a[0], Y: a[1], Z: z}, nil
	default:
		return Point3D{X: a[0], Y: a[1], Z: a[2]}, nil
	}
}

func (p Point2D) Array() []float64 { return []float64{p.X, p.Y} }
func (p Point3D) Array() []float64 { return []float64{p.X, p.Y, p.Z} }

func (p Point2D) Sub(o Point2D) Vector2D { return Vector2D{X: p.X - o.X, Y: p.Y - o.Y} }

func (p Point2D) DistanceTo(o Point2D) float64 { return math.Hypot(p.X-o.X, p.Y-o.Y) }

// IsEquivalent compares coordinates within tol.
func (p Point2D) IsEquivalent(o Point2D, tol float64) bool {
	return math.Abs(p.X-o.X) <= tol && math.Abs(p.Y-o.Y) <= tol
}

func (v Vector2D) Cross(o Vector2D) float64 { return v.X*o.Y - v.Y*o.X }

func (p Point3D) Sub(o Point3D) Vector3D {
	return Vector3D{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

func (p Point3D) Move(v Vector3D) Point3D {
	return Point3D{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z}
}

func (p Point3D) DistanceTo(o Point3D) float64 { return p.Sub(o).Magnitude() }

func (p Point3D) IsEquivalent(o Point3D, tol float64) bool {
	return math.Abs(p.X-o.X) <= tol && math.Abs(p.Y-o.Y) <= tol && math.Abs(p.Z-o.Z) <= tol
}

func (v Vector3D) Dot(o Vector3D) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vector3D) Cross(o Vector3D) Vector3D {
	return Vector3D{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3D) Magnitude() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns the unit vector; the zero vector is returned unchanged.
func (v Vector3D) Normalize() Vector3D {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return Vector3D{X: v.X / m, Y: v.Y / m, Z: v.Z / m}
}
