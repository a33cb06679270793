package geojson

import "fmt"

// The helpers below destructure coordinate arrays. Validated documents
// always pass; shallow documents can still be malformed, so every shape
// mismatch is reported as ErrStructure.

func position(d Document, path string) ([]float64, error) {
	items := d.Array()
	if len(items) < 2 {
		return nil, fmt.Errorf("%w: %s: position needs at least 2 numbers", ErrStructure, path)
	}
	out := make([]float64, 0, min(len(items), 3))
	for i, it := range items {
		v, ok := it.Float()
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d]: expected number, got %s", ErrStructure, path, i, it.Kind())
		}
		// only x, y and z are used
		if i < 3 {
			out = append(out, v)
		}
	}
	return out, nil
}

func positions(d Document, path string, minLen int) ([][]float64, error) {
	if d.Kind() != KindArray {
		return nil, fmt.Errorf("%w: %s: expected array, got %s", ErrStructure, path, d.Kind())
	}
	items := d.Array()
	if len(items) < minLen {
		return nil, fmt.Errorf("%w: %s: expected at least %d positions, got %d", ErrStructure, path, minLen, len(items))
	}
	out := make([][]float64, len(items))
	for i, it := range items {
		p, err := position(it, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func nested[T any](d Document, path string, minLen int, each func(Document, string) (T, error)) ([]T, error) {
	if d.Kind() != KindArray {
		return nil, fmt.Errorf("%w: %s: expected array, got %s", ErrStructure, path, d.Kind())
	}
	items := d.Array()
	if len(items) < minLen {
		return nil, fmt.Errorf("%w: %s: expected at least %d items, got %d", ErrStructure, path, minLen, len(items))
	}
	out := make([]T, len(items))
	for i, it := range items {
		v, err := each(it, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func lineCoords(d Document, path string) ([][]float64, error) {
	return positions(d, path, 2)
}

func ringCoords(d Document, path string) ([][]float64, error) {
	return positions(d, path, 3)
}

func polygonCoords(d Document, path string) ([][][]float64, error) {
	return nested(d, path, 1, ringCoords)
}

// openRing drops the closing vertex when it repeats the first one.
func openRing(ring [][]float64) [][]float64 {
	n := len(ring)
	if n < 2 {
		return ring
	}
	first, last := ring[0], ring[n-1]
	if len(first) != len(last) {
		return ring
	}
	for i := range first {
		if first[i] != last[i] {
			return ring
		}
	}
	return ring[:n-1]
}

// coordinates returns the "coordinates" member of a geometry object.
func coordinates(doc Document) (Document, error) {
	c, ok := Field(doc, KeyCoordinates)
	if !ok {
		return Document{}, fmt.Errorf("%w: $: missing required member %q", ErrStructure, KeyCoordinates)
	}
	return c, nil
}
