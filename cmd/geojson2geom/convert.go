package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/mohammed-shakir/geojson-geometry/internal/render"
	"github.com/mohammed-shakir/geojson-geometry/pkg/geojson"
)

type converter struct {
	opts        geojson.Options
	dim         geojson.Dimension
	concurrency int
}

type line struct {
	Input  string      `json:"input"`
	Result render.Body `json:"result"`
}

// run decodes every file, or stdin when files is empty, and writes one JSON
// line per input in input order. It returns how many inputs failed to decode.
func (c converter) run(ctx context.Context, files []string, stdin io.Reader, out io.Writer) (int, error) {
	if len(files) == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return 0, fmt.Errorf("read stdin: %w", err)
		}
		body, err := render.Result(geojson.DecodeBytes(b, c.opts, c.dim), c.dim)
		if err != nil {
			return 0, err
		}
		return failedCount(body), writeLine(out, line{Input: "-", Result: body})
	}

	bodies := make([]render.Body, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, c.concurrency))
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b, err := render.Result(geojson.DecodeFile(f, c.opts, c.dim), c.dim)
			if err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			bodies[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	failed := 0
	for i, b := range bodies {
		failed += failedCount(b)
		if err := writeLine(out, line{Input: files[i], Result: b}); err != nil {
			return failed, err
		}
	}
	return failed, nil
}

func failedCount(b render.Body) int {
	if b.Kind == geojson.ResultError.String() {
		return 1
	}
	return 0
}

func writeLine(w io.Writer, l line) error {
	b, err := json.Marshal(l)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
