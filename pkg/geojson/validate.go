package geojson

import (
	"fmt"
	"slices"
	"strings"
)

// Outcome of Validate. Selected is true exactly when Err is nil. Type is
// also set when an accepted type fails its contract.
type Outcome struct {
	Type     GeoType
	Selected bool
	Err      error
}

func rejected(err error) Outcome { return Outcome{Err: err} }

// Validate resolves the type tag of doc against candidates. With full set,
// the document is also checked against the contract of its type; without
// it only the tag is checked.
func Validate(doc Document, candidates []GeoType, full bool) Outcome {
	tag, ok := Field(doc, KeyType)
	if !ok {
		return rejected(ErrTypeNotFound)
	}
	s, ok := tag.Str()
	if !ok {
		return rejected(fmt.Errorf("%w: %s", ErrUnknownType, tag.Raw()))
	}
	t, err := ParseGeoType(s)
	if err != nil {
		return rejected(err)
	}
	if !slices.Contains(candidates, t) {
		return rejected(fmt.Errorf("%w: %s (want %s)", ErrTypeNotAccepted, t, joinTypes(candidates)))
	}
	if full {
		if err := checkContract(t, doc); err != nil {
			return Outcome{Type: t, Err: err}
		}
	}
	return Outcome{Type: t, Selected: true}
}

func joinTypes(ts []GeoType) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return strings.Join(names, "|")
}
