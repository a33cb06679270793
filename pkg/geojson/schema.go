package geojson

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/*.json
var schemaFS embed.FS

// contracts are addressed under this base so relative $refs such as
// "defs.json#/definitions/position" resolve against the bundled files
const schemaBase = "mem://geojson/schema/"

// typeContracts compiles the contract of every GeoType once.
var typeContracts = sync.OnceValues(func() (map[GeoType]*jsonschema.Schema, error) {
	c, err := newContractCompiler()
	if err != nil {
		return nil, err
	}
	out := make(map[GeoType]*jsonschema.Schema, len(allTypes))
	for _, t := range allTypes {
		s, err := c.Compile(schemaBase + t.schemaName() + ".json")
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSchemaInvalid, t.schemaName(), err)
		}
		out[t] = s
	}
	return out, nil
})

func newContractCompiler() (*jsonschema.Compiler, error) {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft7)
	entries, err := fs.ReadDir(schemaFS, "schema")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaInvalid, err)
	}
	for _, e := range entries {
		raw, err := schemaFS.ReadFile("schema/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSchemaInvalid, e.Name(), err)
		}
		if err := addContract(c, e.Name(), raw); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func addContract(c *jsonschema.Compiler, file string, raw []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSchemaInvalid, file, err)
	}
	if err := c.AddResource(schemaBase+file, doc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSchemaInvalid, file, err)
	}
	return nil
}

// compileContract compiles raw as name.json next to the bundled contracts.
func compileContract(name string, raw []byte) (*jsonschema.Schema, error) {
	c, err := newContractCompiler()
	if err != nil {
		return nil, err
	}
	if err := addContract(c, name+".json", raw); err != nil {
		return nil, err
	}
	s, err := c.Compile(schemaBase + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSchemaInvalid, name, err)
	}
	return s, nil
}

// checkContract checks doc against the contract of t. Violations wrap
// ErrStructure; contracts that fail to compile wrap ErrSchemaInvalid.
func checkContract(t GeoType, doc Document) error {
	cs, err := typeContracts()
	if err != nil {
		return err
	}
	return checkAgainst(cs[t], doc)
}

func checkAgainst(s *jsonschema.Schema, doc Document) error {
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(doc.Raw()))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	err = s.Validate(inst)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		return fmt.Errorf("%w: %s", ErrStructure, describe(ve))
	}
	return fmt.Errorf("%w: %w", ErrSchemaInvalid, err)
}

// describe reports the deepest violation as "$.path: message".
func describe(ve *jsonschema.ValidationError) string {
	leaf := deepest(ve)
	msg := "does not match"
	if leaf.ErrorKind != nil {
		msg = leaf.ErrorKind.LocalizedString(message.NewPrinter(language.English))
	}
	return instancePath(leaf.InstanceLocation) + ": " + msg
}

func deepest(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return ve
	}
	var best *jsonschema.ValidationError
	for _, c := range ve.Causes {
		if d := deepest(c); best == nil || len(d.InstanceLocation) > len(best.InstanceLocation) {
			best = d
		}
	}
	return best
}

func instancePath(loc []string) string {
	var b strings.Builder
	b.WriteString("$")
	for _, seg := range loc {
		if _, err := strconv.Atoi(seg); err == nil {
			b.WriteString("[" + seg + "]")
			continue
		}
		b.WriteString("." + seg)
	}
	return b.String()
}
