package geojson

import (
	"github.com/mohammed-shakir/geojson-geometry/pkg/geometry"
)

type ResultKind int

const (
	ResultError ResultKind = iota
	ResultSingle
	ResultSequence
	ResultFeature
	ResultFeatures
)

func (k ResultKind) String() string {
	switch k {
	case ResultSingle:
		return "single"
	case ResultSequence:
		return "sequence"
	case ResultFeature:
		return "feature"
	case ResultFeatures:
		return "features"
	default:
		return "error"
	}
}

// Result is the outcome of every decode entry point. Exactly one payload is
// set, matching Kind.
type Result struct {
	kind     ResultKind
	single   geometry.Geometry
	seq      []geometry.Geometry
	feature  *Feature
	features []Feature
	err      error
}

func single(g geometry.Geometry) Result { return Result{kind: ResultSingle, single: g} }

func sequence(gs []geometry.Geometry) Result {
	if gs == nil {
		gs = []geometry.Geometry{}
	}
	return Result{kind: ResultSequence, seq: gs}
}

func featureResult(f Feature) Result     { return Result{kind: ResultFeature, feature: &f} }
func featuresResult(fs []Feature) Result { return Result{kind: ResultFeatures, features: fs} }
func failure(err error) Result           { return Result{kind: ResultError, err: err} }

func (r Result) Kind() ResultKind { return r.kind }

func (r Result) OK() bool { return r.kind != ResultError }

// Err is nil unless Kind is ResultError.
func (r Result) Err() error { return r.err }

// ErrorText is the human readable failure, empty on success.
func (r Result) ErrorText() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

func (r Result) Single() (geometry.Geometry, bool) {
	return r.single, r.kind == ResultSingle
}

func (r Result) Sequence() ([]geometry.Geometry, bool) {
	return r.seq, r.kind == ResultSequence
}

// Geometries flattens a single or sequence result; other kinds yield nil.
func (r Result) Geometries() []geometry.Geometry {
	switch r.kind {
	case ResultSingle:
		return []geometry.Geometry{r.single}
	case ResultSequence:
		return r.seq
	default:
		return nil
	}
}

func (r Result) Feature() (Feature, bool) {
	if r.kind != ResultFeature || r.feature == nil {
		return Feature{}, false
	}
	return *r.feature, true
}

func (r Result) Features() ([]Feature, bool) {
	return r.features, r.kind == ResultFeatures
}
