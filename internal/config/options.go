package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mohammed-shakir/geojson-geometry/pkg/geojson"
)

// DecodeOptions is the on-disk form of geojson.Options plus the output
// dimension. Unset fields keep the decoder defaults.
type DecodeOptions struct {
	Dimension    string   `yaml:"dimension" validate:"omitempty,oneof=2d 3d 2 3"`
	Z            float64  `yaml:"z"`
	Interpolated bool     `yaml:"interpolated"`
	MergeFaces   bool     `yaml:"merge_faces"`
	Validate     *bool    `yaml:"validate"`
	FillPolygon  bool     `yaml:"fill_polygon"`
	Tolerance    *float64 `yaml:"tolerance" validate:"omitempty,gt=0"`
}

// LoadOptions reads a YAML options file. Unknown keys are rejected and an
// empty file yields the defaults.
func LoadOptions(path string) (DecodeOptions, error) {
	var o DecodeOptions
	f, err := os.Open(path)
	if err != nil {
		return o, fmt.Errorf("open options %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return o, fmt.Errorf("parse options %s: %w", path, err)
	}
	if err := o.Check(); err != nil {
		return o, fmt.Errorf("options %s: %w", path, err)
	}
	return o, nil
}

// Check validates field ranges.
func (o DecodeOptions) Check() error {
	return validate.Struct(o)
}

// Options converts to decoder options. extra setters are applied last.
func (o DecodeOptions) Options(extra ...geojson.Option) geojson.Options {
	set := []geojson.Option{
		geojson.WithZ(o.Z),
		geojson.WithInterpolated(o.Interpolated),
		geojson.WithMergeFaces(o.MergeFaces),
		geojson.WithFillPolygon(o.FillPolygon),
	}
	if o.Validate != nil {
		set = append(set, geojson.WithValidation(*o.Validate))
	}
	if o.Tolerance != nil {
		set = append(set, geojson.WithTolerance(*o.Tolerance))
	}
	return geojson.NewOptions(append(set, extra...)...)
}

// Dim returns the configured dimension, or def when none is set.
func (o DecodeOptions) Dim(def geojson.Dimension) (geojson.Dimension, error) {
	if o.Dimension == "" {
		return def, nil
	}
	return geojson.ParseDimension(o.Dimension)
}
