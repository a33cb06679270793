package geometry

import "fmt"

// Polyface3D is a set of faces sharing welded vertices. FaceIndices holds, per
// face, the boundary loop followed by hole loops as indices into Vertices.
type Polyface3D struct {
	Vertices    []Point3D
	FaceIndices [][][]int
	Faces       []Face3D
	nakedEdges  int
}

func (Polyface3D) Kind() Kind { return KindPolyface3D }

// IsSolid reports whether every edge is shared by exactly two faces.
func (p Polyface3D) IsSolid() bool { return p.nakedEdges == 0 }

// NakedEdges counts edges used by a single face.
func (p Polyface3D) NakedEdges() int { return p.nakedEdges }

type edgeKey struct{ a, b int }

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

// PolyfaceFromFaces welds vertices closer than tolerance and joins the faces
// into one polyface. It fails when an edge is shared by more than two faces or
// when the faces do not form one connected group.
func PolyfaceFromFaces(faces []Face3D, tolerance float64) (Polyface3D, error) {
	if len(faces) == 0 {
		return Polyface3D{}, ErrNoFaces
	}

	pf := Polyface3D{
		FaceIndices: make([][][]int, len(faces)),
		Faces:       faces,
	}
	weld := func(p Point3D) int {
		for i, v := range pf.Vertices {
			if v.IsEquivalent(p, tolerance) {
				return i
			}
		}
		pf.Vertices = append(pf.Vertices, p)
		return len(pf.Vertices) - 1
	}

	edges := map[edgeKey][]int{}
	for fi, f := range faces {
		loops := append([][]Point3D{f.Boundary}, f.Holes...)
		pf.FaceIndices[fi] = make([][]int, len(loops))
		for li, loop := range loops {
			idx := make([]int, len(loop))
			for k, p := range loop {
				idx[k] = weld(p)
			}
			pf.FaceIndices[fi][li] = idx
			for k := range idx {
				a, b := idx[k], idx[(k+1)%len(idx)]
				if a == b {
					continue
				}
				key := newEdgeKey(a, b)
				// a face counts once per edge, even when welding folds its loop back
				if us := edges[key]; len(us) > 0 && us[len(us)-1] == fi {
					continue
				}
				edges[key] = append(edges[key], fi)
			}
		}
	}

	uf := newUnionFind(len(faces))
	for key, users := range edges {
		switch {
		case len(users) > 2:
			return Polyface3D{}, fmt.Errorf("%w (edge %d-%d used %d times)", ErrNotManifold, key.a, key.b, len(users))
		case len(users) == 2:
			uf.union(users[0], users[1])
		default:
			pf.nakedEdges++
		}
	}
	if groups := uf.groups(); groups > 1 {
		return Polyface3D{}, fmt.Errorf("%w (%d separate groups)", ErrDisconnected, groups)
	}
	return pf, nil
}

type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

func (u *unionFind) groups() int {
	n := 0
	for i := range u.parent {
		if u.find(i) == i {
			n++
		}
	}
	return n
}
