package geojson

import (
	"errors"
	"fmt"
)

// Feature pairs an optional decoded geometry with opaque properties.
// Geometry is always 3D.
type Feature struct {
	geometry   Result
	hasGeom    bool
	properties map[string]any
	id         any
	reason     error
}

// Geometry returns the decoded geometry, or false when the feature has none.
func (f Feature) Geometry() (Result, bool) {
	if !f.hasGeom {
		return failure(f.reason), false
	}
	return f.geometry, true
}

func (f Feature) HasGeometry() bool { return f.hasGeom }

// Properties may be nil when the document carries none.
func (f Feature) Properties() map[string]any { return f.properties }

// ID is the optional "id" member, a string or float64.
func (f Feature) ID() any { return f.id }

// Reason explains a missing geometry: ErrGeometryAbsent, a contract
// violation of the feature itself or the geometry decode error.
func (f Feature) Reason() error { return f.reason }

// DecodeFeature decodes a Feature document. A document tagged Feature that
// breaks the Feature contract, or whose geometry is missing or fails to
// decode, yields a Feature without geometry. Only a document that is not
// tagged Feature is an error.
func DecodeFeature(doc Document, opts Options) Result {
	out := Validate(doc, []GeoType{TypeFeature}, opts.Validate())
	if !out.Selected {
		if f, ok := brokenFeature(doc, out); ok {
			return featureResult(f)
		}
		return failure(out.Err)
	}
	return featureResult(assembleFeature(doc, opts.Child(), opts.Validate()))
}

// DecodeFeatureCollection decodes every member of a FeatureCollection.
func DecodeFeatureCollection(doc Document, opts Options) Result {
	if _, err := selectFor(doc, []GeoType{TypeFeatureCollection}, opts); err != nil {
		return failure(err)
	}
	return assembleCollection(doc, opts.Child(), opts.Validate())
}

// brokenFeature keeps the properties of a Feature whose own contract failed.
func brokenFeature(doc Document, out Outcome) (Feature, bool) {
	if out.Type != TypeFeature || !errors.Is(out.Err, ErrStructure) {
		return Feature{}, false
	}
	f := Feature{properties: properties(doc), reason: out.Err}
	if id, ok := doc.Get("id"); ok {
		f.id = id.Value()
	}
	return f, true
}

// assembleFeature builds a Feature from an already accepted document. The
// Feature contract binds member shapes only, so with full set the geometry
// is checked against its own contract here; otherwise only its tag is
// trusted and the builders check shapes.
func assembleFeature(doc Document, opts Options, full bool) Feature {
	f := Feature{properties: properties(doc)}
	if id, ok := doc.Get("id"); ok {
		f.id = id.Value()
	}

	g, ok := Field(doc, KeyGeometry)
	if !ok || g.Kind() == KindNull {
		f.reason = ErrGeometryAbsent
		return f
	}
	sel := Validate(g, geometryTypes, full)
	if !sel.Selected {
		f.reason = sel.Err
		return f
	}
	r := dispatch(g, sel.Type, opts.Child(), Dim3)
	if !r.OK() {
		f.reason = r.Err()
		return f
	}
	f.geometry, f.hasGeom = r, true
	return f
}

// assembleCollection shares one set of options across all members. Each
// member must at least be tagged as a Feature; with full set a member that
// breaks the Feature contract becomes a Feature without geometry.
func assembleCollection(doc Document, opts Options, full bool) Result {
	arr, ok := Field(doc, KeyFeatures)
	if !ok || arr.Kind() != KindArray {
		return failure(fmt.Errorf("%w: $: %q must be an array", ErrStructure, KeyFeatures))
	}
	items := arr.Array()
	out := make([]Feature, 0, len(items))
	for i, item := range items {
		sel := Validate(item, []GeoType{TypeFeature}, full)
		if !sel.Selected {
			f, ok := brokenFeature(item, sel)
			if !ok {
				return failure(fmt.Errorf("features[%d]: %w", i, sel.Err))
			}
			out = append(out, f)
			continue
		}
		out = append(out, assembleFeature(item, opts, full))
	}
	return featuresResult(out)
}

func properties(doc Document) map[string]any {
	p, ok := Field(doc, KeyProperties)
	if !ok || p.Kind() != KindObject {
		return nil
	}
	m, _ := p.Value().(map[string]any)
	return m
}
