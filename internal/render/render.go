// Package render turns decode results into the JSON bodies served over HTTP
// and stored by the ingest worker.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/mohammed-shakir/geojson-geometry/pkg/geojson"
	"github.com/mohammed-shakir/geojson-geometry/pkg/geometry"
)

type Primitive struct {
	Type    string          `json:"type"`
	GeoJSON json.RawMessage `json:"geojson"`
}

type Body struct {
	Kind       string          `json:"kind"`
	Dimension  string          `json:"dimension"`
	Geometries []Primitive     `json:"geometries,omitempty"`
	Feature    json.RawMessage `json:"feature,omitempty"`
	Features   json.RawMessage `json:"features,omitempty"`
	// Reasons maps feature index to why its geometry is absent.
	Reasons map[int]string `json:"reasons,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Result renders r. Error results render with their message; callers
// choose the status code. Feature results always report 3d.
func Result(r geojson.Result, dim geojson.Dimension) (Body, error) {
	if k := r.Kind(); k == geojson.ResultFeature || k == geojson.ResultFeatures {
		dim = geojson.Dim3
	}
	b := Body{Kind: r.Kind().String(), Dimension: dim.String()}
	switch r.Kind() {
	case geojson.ResultError:
		b.Error = r.ErrorText()
	case geojson.ResultSingle, geojson.ResultSequence:
		gs := r.Geometries()
		b.Geometries = make([]Primitive, 0, len(gs))
		for i, g := range gs {
			p, err := primitive(g)
			if err != nil {
				return b, fmt.Errorf("geometry %d: %w", i, err)
			}
			b.Geometries = append(b.Geometries, p)
		}
	case geojson.ResultFeature:
		f, _ := r.Feature()
		raw, err := geojson.EncodeFeature(f)
		if err != nil {
			return b, err
		}
		b.Feature = raw
		if !f.HasGeometry() && f.Reason() != nil {
			b.Reasons = map[int]string{0: f.Reason().Error()}
		}
	case geojson.ResultFeatures:
		fs, _ := r.Features()
		raw, err := geojson.EncodeFeatures(fs)
		if err != nil {
			return b, err
		}
		b.Features = raw
		for i, f := range fs {
			if f.HasGeometry() || f.Reason() == nil {
				continue
			}
			if b.Reasons == nil {
				b.Reasons = map[int]string{}
			}
			b.Reasons[i] = f.Reason().Error()
		}
	}
	return b, nil
}

// Marshal renders r straight to JSON.
func Marshal(r geojson.Result, dim geojson.Dimension) ([]byte, error) {
	b, err := Result(r, dim)
	if err != nil {
		return nil, err
	}
	return json.Marshal(b)
}

func primitive(g geometry.Geometry) (Primitive, error) {
	s, err := geojson.Encode(g)
	if err != nil {
		return Primitive{}, err
	}
	return Primitive{Type: g.Kind().String(), GeoJSON: json.RawMessage(s)}, nil
}
