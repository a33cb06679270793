package geojson

import (
	"fmt"

	"github.com/rs/zerolog"
)

const DefaultTolerance = 0.001

// Options configure a decode call. Values are immutable once built; use
// NewOptions with Option setters. The zero value validates fully and uses
// DefaultTolerance.
type Options struct {
	z            float64
	interpolated bool
	mergeFaces   bool
	skipValidate bool
	fillPolygon  bool
	tolerance    float64
	logger       *zerolog.Logger
}

type Option func(*Options)

// WithZ sets the elevation appended to 2D coordinates promoted to 3D.
func WithZ(z float64) Option { return func(o *Options) { o.z = z } }

// WithInterpolated marks produced polylines for smooth rendering.
func WithInterpolated(v bool) Option { return func(o *Options) { o.interpolated = v } }

// WithMergeFaces tries to join MultiPolygon faces into one polyface.
func WithMergeFaces(v bool) Option { return func(o *Options) { o.mergeFaces = v } }

// WithValidation toggles full contract validation of the top-level document.
func WithValidation(v bool) Option { return func(o *Options) { o.skipValidate = !v } }

// WithFillPolygon builds Face3D instead of Polygon2D for the polygons of a
// 2D GeometryCollection. Top-level polygons are not affected.
func WithFillPolygon(v bool) Option { return func(o *Options) { o.fillPolygon = v } }

// WithTolerance sets the vertex welding distance used when merging faces.
// Zero or negative values fall back to DefaultTolerance.
func WithTolerance(t float64) Option { return func(o *Options) { o.tolerance = t } }

func WithLogger(l *zerolog.Logger) Option { return func(o *Options) { o.logger = l } }

func NewOptions(opts ...Option) Options {
	o := Options{tolerance: DefaultTolerance}
	for _, f := range opts {
		f(&o)
	}
	return o
}

func (o Options) Z() float64         { return o.z }
func (o Options) Interpolated() bool { return o.interpolated }
func (o Options) MergeFaces() bool   { return o.mergeFaces }
func (o Options) Validate() bool     { return !o.skipValidate }
func (o Options) FillPolygon() bool  { return o.fillPolygon }

// Tolerance is the welding distance in effect, never below or equal to zero.
func (o Options) Tolerance() float64 {
	if o.tolerance <= 0 {
		return DefaultTolerance
	}
	return o.tolerance
}

func (o Options) Logger() *zerolog.Logger {
	if o.logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return o.logger
}

// Child derives the options for a nested document: every setting is kept
// but validation is off, since the parent contract already covered it.
func (o Options) Child() Options {
	c := o
	c.skipValidate = true
	return c
}

func (o Options) withoutMerge() Options {
	c := o
	c.mergeFaces = false
	return c
}

// Fingerprint identifies the settings that affect decode output.
func (o Options) Fingerprint() string {
	return fmt.Sprintf("z=%g;interp=%t;merge=%t;validate=%t;fill=%t;tol=%g",
		o.z, o.interpolated, o.mergeFaces, o.Validate(), o.fillPolygon, o.Tolerance())
}
