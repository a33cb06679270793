// Command geojson2geom decodes GeoJSON files into geometry primitives and
// prints one JSON line per input.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/mohammed-shakir/geojson-geometry/internal/config"
	"github.com/mohammed-shakir/geojson-geometry/internal/logger"
	"github.com/mohammed-shakir/geojson-geometry/pkg/geojson"
)

type Options struct {
	Dimension    string  `short:"d" long:"dim"          env:"GEOJSON_DIM"  description:"Output dimension" choice:"2d" choice:"3d" default:"3d"`
	Z            float64 `short:"z" long:"z"            env:"GEOJSON_Z"    description:"Elevation for 2D coordinates promoted to 3D" default:"0"`
	Interpolated bool    `long:"interpolated"           description:"Mark polylines for smooth rendering"`
	MergeFaces   bool    `short:"m" long:"merge-faces"  description:"Join MultiPolygon faces into one polyface"`
	NoValidate   bool    `long:"no-validate"            description:"Trust the type tag instead of checking the full structure"`
	FillPolygon  bool    `long:"fill-polygon"           description:"Build filled faces for 2D polygons"`
	Tolerance    float64 `short:"t" long:"tolerance"    description:"Vertex welding distance for merged faces" default:"0.001"`
	OptionsFile  string  `short:"c" long:"config"       env:"OPTIONS_FILE" description:"YAML decode options; flags given explicitly win"`
	Concurrency  int     `short:"p" long:"concurrency"  env:"CONCURRENCY"  description:"Files decoded in parallel" default:"4"`
	LogLevel     string  `long:"log-level"              env:"LOG_LEVEL"    description:"Log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"warn"`

	Args struct {
		Files []string `positional-arg-name:"FILE" description:"GeoJSON files; stdin when none"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run())
}

func run() int {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return 2
	}

	zl := logger.Build(logger.Config{Level: opts.LogLevel, Component: "geojson2geom"}, os.Stderr)

	dopts, err := resolveOptions(parser, opts)
	if err != nil {
		zl.Error().Err(err).Msg("invalid options")
		return 2
	}
	dim, err := dopts.Dim(geojson.Dim3)
	if err != nil {
		zl.Error().Err(err).Msg("invalid dimension")
		return 2
	}

	job := converter{
		opts:        dopts.Options(geojson.WithLogger(&zl)),
		dim:         dim,
		concurrency: opts.Concurrency,
	}
	failed, err := job.run(context.Background(), opts.Args.Files, os.Stdin, os.Stdout)
	if err != nil {
		zl.Error().Err(err).Msg("conversion aborted")
		return 1
	}
	if failed > 0 {
		zl.Warn().Int("failed", failed).Msg("some inputs did not decode")
		return 1
	}
	return 0
}

// resolveOptions starts from the options file and overlays every flag the
// user set explicitly. Defaults and env values only fill what the file
// leaves unset.
func resolveOptions(p *flags.Parser, opts Options) (config.DecodeOptions, error) {
	var o config.DecodeOptions
	if opts.OptionsFile != "" {
		var err error
		if o, err = config.LoadOptions(opts.OptionsFile); err != nil {
			return o, err
		}
	}
	set := func(long string) bool {
		f := p.FindOptionByLongName(long)
		return f != nil && f.IsSet() && !f.IsSetDefault()
	}

	if set("dim") || o.Dimension == "" {
		o.Dimension = opts.Dimension
	}
	if set("z") {
		o.Z = opts.Z
	}
	if set("interpolated") {
		o.Interpolated = opts.Interpolated
	}
	if set("merge-faces") {
		o.MergeFaces = opts.MergeFaces
	}
	if set("no-validate") {
		v := !opts.NoValidate
		o.Validate = &v
	}
	if set("fill-polygon") {
		o.FillPolygon = opts.FillPolygon
	}
	if set("tolerance") || o.Tolerance == nil {
		t := opts.Tolerance
		o.Tolerance = &t
	}
	if err := o.Check(); err != nil {
		return o, fmt.Errorf("decode options: %w", err)
	}
	return o, nil
}
