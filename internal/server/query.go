package server

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mohammed-shakir/geojson-geometry/internal/config"
)

// parseDecodeQuery overlays query parameters on base. Absent parameters
// keep the base value.
func parseDecodeQuery(q url.Values, base config.DecodeOptions) (config.DecodeOptions, error) {
	o := base

	if v := strings.TrimSpace(q.Get("dim")); v != "" {
		o.Dimension = strings.ToLower(v)
	}
	if err := parseFloatParam(q, "z", func(f float64) { o.Z = f }); err != nil {
		return o, err
	}
	if err := parseFloatParam(q, "tolerance", func(f float64) { o.Tolerance = &f }); err != nil {
		return o, err
	}
	for name, dst := range map[string]*bool{
		"interpolated": &o.Interpolated,
		"merge_faces":  &o.MergeFaces,
		"fill_polygon": &o.FillPolygon,
	} {
		if err := parseBoolParam(q, name, func(b bool) { *dst = b }); err != nil {
			return o, err
		}
	}
	if err := parseBoolParam(q, "validate", func(b bool) { o.Validate = &b }); err != nil {
		return o, err
	}

	if err := o.Check(); err != nil {
		return o, fmt.Errorf("invalid decode parameters: %w", err)
	}
	return o, nil
}

func parseFloatParam(q url.Values, name string, set func(float64)) error {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: parse float: %w", name, err)
	}
	set(f)
	return nil
}

func parseBoolParam(q url.Values, name string, set func(bool)) error {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: parse bool: %w", name, err)
	}
	set(b)
	return nil
}
