package geojson

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Document {
	t.Helper()
	d, err := Parse(s)
	require.NoError(t, err)
	return d
}

func TestParse_RejectsMalformedJSON(t *testing.T) {
	_, err := Parse(`{"type":"Point",`)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestField(t *testing.T) {
	d := mustParse(t, `{"type":"Point","coordinates":[1,2],"a.b":1}`)

	v, ok := Field(d, KeyCoordinates)
	require.True(t, ok)
	assert.Equal(t, KindArray, v.Kind())
	assert.Equal(t, 2, v.Len())

	_, ok = Field(d, KeyGeometries)
	assert.False(t, ok)

	// keys are matched literally
	_, ok = d.Get("a.b")
	assert.True(t, ok)
}

func TestValidate_TypeResolution(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"missing type", `{"coordinates":[1,2]}`, ErrTypeNotFound},
		{"unknown type", `{"type":"Circle","coordinates":[1,2]}`, ErrUnknownType},
		{"lower case tag", `{"type":"point","coordinates":[1,2]}`, ErrUnknownType},
		{"non string tag", `{"type":7}`, ErrUnknownType},
		{"not a candidate", `{"type":"LineString","coordinates":[[0,0],[1,1]]}`, ErrTypeNotAccepted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, full := range []bool{true, false} {
				out := Validate(mustParse(t, tc.doc), pointTypes, full)
				assert.False(t, out.Selected)
				assert.ErrorIs(t, out.Err, tc.want)
			}
		})
	}
}

func TestValidate_Contracts(t *testing.T) {
	cases := []struct {
		name  string
		doc   string
		valid bool
	}{
		{"point", `{"type":"Point","coordinates":[125.6,10.1]}`, true},
		{"point 3d", `{"type":"Point","coordinates":[1,2,3]}`, true},
		{"point one number", `{"type":"Point","coordinates":[1]}`, false},
		{"point string leaf", `{"type":"Point","coordinates":["1",2]}`, false},
		{"point no coordinates", `{"type":"Point"}`, false},
		{"multipoint", `{"type":"MultiPoint","coordinates":[[1,2],[3,4]]}`, true},
		{"line one point", `{"type":"LineString","coordinates":[[0,0]]}`, false},
		{"line", `{"type":"LineString","coordinates":[[0,0],[1,1]]}`, true},
		{"multiline bad member", `{"type":"MultiLineString","coordinates":[[[0,0],[1,1]],[[2,2]]]}`, false},
		{"polygon", `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`, true},
		{"polygon short ring", `{"type":"Polygon","coordinates":[[[0,0],[1,0],[0,0]]]}`, false},
		{"polygon no rings", `{"type":"Polygon","coordinates":[]}`, false},
		{"multipolygon", `{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]]]}`, true},
		{"bbox too short", `{"type":"Point","coordinates":[1,2],"bbox":[1,2]}`, false},
		{"collection", `{"type":"GeometryCollection","geometries":[{"type":"Point","coordinates":[1,2]},{"type":"GeometryCollection","geometries":[]}]}`, true},
		{"collection bad member", `{"type":"GeometryCollection","geometries":[{"type":"Point","coordinates":[1]}]}`, false},
		{"collection with feature", `{"type":"GeometryCollection","geometries":[{"type":"Feature","properties":null,"geometry":null}]}`, false},
		{"feature", `{"type":"Feature","properties":{"a":1},"geometry":null}`, true},
		{"feature no properties", `{"type":"Feature","geometry":null}`, false},
		{"feature scalar geometry", `{"type":"Feature","properties":null,"geometry":3}`, false},
		{"feature collection", `{"type":"FeatureCollection","features":[{"type":"Feature","properties":null,"geometry":null}]}`, true},
		{"feature collection bad member", `{"type":"FeatureCollection","features":[{"type":"Point","coordinates":[1,2]}]}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Validate(mustParse(t, tc.doc), allTypes, true)
			if tc.valid {
				require.NoError(t, out.Err)
				assert.True(t, out.Selected)
				return
			}
			assert.False(t, out.Selected)
			assert.ErrorIs(t, out.Err, ErrStructure)
		})
	}
}

func TestValidate_ShallowTrustsTag(t *testing.T) {
	out := Validate(mustParse(t, `{"type":"LineString","coordinates":[[0,0]]}`), lineTypes, false)
	require.True(t, out.Selected)
	assert.Equal(t, TypeLineString, out.Type)
	assert.NoError(t, out.Err)
}

func TestContracts_AllCompile(t *testing.T) {
	cs, err := typeContracts()
	require.NoError(t, err)
	for _, gt := range allTypes {
		assert.NotNil(t, cs[gt], gt.String())
	}
}

func TestCompileContract_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":         `{"type":`,
		"unknown type":     `{"type":"blob"}`,
		"negative min":     `{"minItems":-1}`,
		"required numbers": `{"required":[1,2]}`,
		"empty oneOf":      `{"oneOf":[]}`,
		"scalar node":      `{"items":3}`,
		"unresolved ref":   `{"$ref":"#/definitions/missing"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := compileContract("test", []byte(raw))
			assert.ErrorIs(t, err, ErrSchemaInvalid)
		})
	}
}

func TestCompileContract_ResolvesBundledRefs(t *testing.T) {
	s, err := compileContract("test", []byte(`{"$ref":"defs.json#/definitions/linearRing"}`))
	require.NoError(t, err)

	assert.NoError(t, checkAgainst(s, mustParse(t, `[[0,0],[1,0],[1,1],[0,0]]`)))
	err = checkAgainst(s, mustParse(t, `[[0,0],[1,0],[0,0]]`))
	assert.ErrorIs(t, err, ErrStructure)
	assert.NotErrorIs(t, err, ErrSchemaInvalid)
}

func TestValidate_ViolationNamesPath(t *testing.T) {
	out := Validate(mustParse(t, `{"type":"Polygon","coordinates":[[[0,0],[1,0],[0,0]]]}`), polygonTypes, true)
	require.ErrorIs(t, out.Err, ErrStructure)
	assert.Contains(t, out.Err.Error(), "$.coordinates[0]")
	assert.Equal(t, TypePolygon, out.Type, "type is kept for a contract failure")
	assert.False(t, out.Selected)
}

func TestValidate_Concurrent(t *testing.T) {
	doc := mustParse(t, `{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]]]}`)
	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = Validate(doc, allTypes, true).Err
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestParseGeoType(t *testing.T) {
	for _, gt := range allTypes {
		got, err := ParseGeoType(gt.String())
		require.NoError(t, err)
		assert.Equal(t, gt, got)
	}
	_, err := ParseGeoType("Circle")
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Equal(t, "multipolygon", TypeMultiPolygon.schemaName())
}
