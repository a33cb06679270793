package geometry

// Mesh2D is a triangle mesh; each face indexes three Vertices.
type Mesh2D struct {
	Vertices []Point2D
	Faces    [][3]int
}

type Mesh3D struct {
	Vertices []Point3D
	Faces    [][3]int
}

func (Mesh2D) Kind() Kind { return KindMesh2D }
func (Mesh3D) Kind() Kind { return KindMesh3D }

func (m Mesh2D) Area() float64 {
	var a float64
	for _, f := range m.Faces {
		p0, p1, p2 := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		a += p1.Sub(p0).Cross(p2.Sub(p0)) / 2
	}
	if a < 0 {
		return -a
	}
	return a
}

func (m Mesh3D) Area() float64 {
	var a float64
	for _, f := range m.Faces {
		p0, p1, p2 := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		a += p1.Sub(p0).Cross(p2.Sub(p0)).Magnitude() / 2
	}
	return a
}
