package geometry

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// triangulate ear-clips a boundary with holes. Triangles index into the
// concatenation of boundary followed by every hole, in order.
func triangulate(boundary []Point2D, holes [][]Point2D) ([][3]int, error) {
	if len(boundary) < 3 {
		return nil, fmt.Errorf("%w: %w", ErrTriangulation, ErrTooFewVertices)
	}

	pts := make([]Point2D, 0, len(boundary))
	pts = append(pts, boundary...)
	outer := indexRange(0, len(boundary))
	if ringOrientation(boundary) == orb.CW {
		reverseInts(outer)
	}

	type holeRing struct {
		idx  []int
		maxX float64
	}
	rings := make([]holeRing, 0, len(holes))
	for _, h := range holes {
		if len(h) < 3 {
			return nil, fmt.Errorf("%w: hole %w", ErrTriangulation, ErrTooFewVertices)
		}
		start := len(pts)
		pts = append(pts, h...)
		idx := indexRange(start, len(h))
		// holes wind against the boundary
		if ringOrientation(h) != orb.CW {
			reverseInts(idx)
		}
		maxX := math.Inf(-1)
		for _, p := range h {
			maxX = math.Max(maxX, p.X)
		}
		rings = append(rings, holeRing{idx: idx, maxX: maxX})
	}
	sort.SliceStable(rings, func(i, j int) bool { return rings[i].maxX > rings[j].maxX })

	seq := outer
	for i, r := range rings {
		others := make([][]int, 0, len(rings)-i-1)
		for _, o := range rings[i+1:] {
			others = append(others, o.idx)
		}
		seq = bridgeHole(pts, seq, r.idx, others)
	}
	return earClip(pts, seq)
}

// bridgeHole splices hole into seq through the closest mutually visible pair.
func bridgeHole(pts []Point2D, seq, hole []int, pending [][]int) []int {
	hi := 0
	for k := range hole {
		if pts[hole[k]].X > pts[hole[hi]].X {
			hi = k
		}
	}
	hp := pts[hole[hi]]

	loops := append([][]int{seq, hole}, pending...)
	best, fallback := -1, -1
	bestD, fallbackD := math.Inf(1), math.Inf(1)
	for j, vi := range seq {
		d := hp.DistanceTo(pts[vi])
		if d < fallbackD {
			fallback, fallbackD = j, d
		}
		if d < bestD && segmentClear(pts, hp, pts[vi], loops) {
			best, bestD = j, d
		}
	}
	if best < 0 {
		best = fallback
	}

	out := make([]int, 0, len(seq)+len(hole)+2)
	out = append(out, seq[:best+1]...)
	for k := 0; k <= len(hole); k++ {
		out = append(out, hole[(hi+k)%len(hole)])
	}
	out = append(out, seq[best:]...)
	return out
}

func segmentClear(pts []Point2D, a, b Point2D, loops [][]int) bool {
	for _, loop := range loops {
		for k := range loop {
			p := pts[loop[k]]
			q := pts[loop[(k+1)%len(loop)]]
			if p == a || p == b || q == a || q == b {
				continue
			}
			if segmentsCross(a, b, p, q) {
				return false
			}
		}
	}
	return true
}

func segmentsCross(a, b, c, d Point2D) bool {
	d1 := turn(c, d, a)
	d2 := turn(c, d, b)
	d3 := turn(a, b, c)
	d4 := turn(a, b, d)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func earClip(pts []Point2D, seq []int) ([][3]int, error) {
	idx := append([]int(nil), seq...)
	tris := make([][3]int, 0, len(idx))

	for len(idx) > 3 {
		n := len(idx)
		clipped := false
		for i := 0; i < n; i++ {
			a, b, c := idx[(i+n-1)%n], idx[i], idx[(i+1)%n]
			t := turn(pts[a], pts[b], pts[c])
			if t == 0 {
				// collinear or doubled-back vertex adds no area
				idx = append(idx[:i], idx[i+1:]...)
				clipped = true
				break
			}
			if t < 0 || anyInside(pts, idx, a, b, c) {
				continue
			}
			tris = append(tris, [3]int{a, b, c})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, fmt.Errorf("%w: no ear among %d vertices", ErrTriangulation, len(idx))
		}
	}
	if len(idx) == 3 && turn(pts[idx[0]], pts[idx[1]], pts[idx[2]]) != 0 {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	if len(tris) == 0 {
		return nil, fmt.Errorf("%w: degenerate polygon", ErrTriangulation)
	}
	return tris, nil
}

func anyInside(pts []Point2D, idx []int, a, b, c int) bool {
	pa, pb, pc := pts[a], pts[b], pts[c]
	for _, k := range idx {
		p := pts[k]
		if p == pa || p == pb || p == pc {
			continue
		}
		if turn(pa, pb, p) > 0 && turn(pb, pc, p) > 0 && turn(pc, pa, p) > 0 {
			return true
		}
	}
	return false
}

// turn is positive for a left (counter-clockwise) turn a->b->c.
func turn(a, b, c Point2D) float64 {
	return b.Sub(a).Cross(c.Sub(b))
}

func indexRange(start, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
