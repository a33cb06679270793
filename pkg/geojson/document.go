package geojson

import (
	"github.com/tidwall/gjson"
)

type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Document is a read-only view over parsed JSON text.
type Document struct {
	res gjson.Result
}

// Parse checks that text is well-formed JSON and wraps it.
func Parse(text string) (Document, error) {
	if !gjson.Valid(text) {
		return Document{}, ErrInvalidJSON
	}
	return Document{res: gjson.Parse(text)}, nil
}

// ParseBytes is Parse for a byte slice.
func ParseBytes(b []byte) (Document, error) {
	if !gjson.ValidBytes(b) {
		return Document{}, ErrInvalidJSON
	}
	return Document{res: gjson.ParseBytes(b)}, nil
}

func (d Document) Kind() ValueKind {
	switch d.res.Type {
	case gjson.False, gjson.True:
		return KindBool
	case gjson.Number:
		return KindNumber
	case gjson.String:
		return KindString
	case gjson.JSON:
		if d.res.IsArray() {
			return KindArray
		}
		return KindObject
	default:
		return KindNull
	}
}

// Get returns the member named key of an object. Keys are matched exactly,
// without gjson path syntax.
func (d Document) Get(key string) (Document, bool) {
	if !d.res.IsObject() {
		return Document{}, false
	}
	var (
		out   gjson.Result
		found bool
	)
	d.res.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			out, found = v, true
			return false
		}
		return true
	})
	return Document{res: out}, found
}

// Array returns the elements of an array, nil for other kinds.
func (d Document) Array() []Document {
	if !d.res.IsArray() {
		return nil
	}
	items := d.res.Array()
	out := make([]Document, len(items))
	for i, it := range items {
		out[i] = Document{res: it}
	}
	return out
}

// Len is the element count of an array, 0 for other kinds.
func (d Document) Len() int {
	if !d.res.IsArray() {
		return 0
	}
	n := 0
	d.res.ForEach(func(_, _ gjson.Result) bool {
		n++
		return true
	})
	return n
}

func (d Document) Float() (float64, bool) {
	if d.res.Type != gjson.Number {
		return 0, false
	}
	return d.res.Num, true
}

func (d Document) Str() (string, bool) {
	if d.res.Type != gjson.String {
		return "", false
	}
	return d.res.Str, true
}

// Value converts the document to plain Go values (map[string]any, []any,
// float64, string, bool, nil).
func (d Document) Value() any {
	return d.res.Value()
}

// Raw is the original JSON text of this value.
func (d Document) Raw() string {
	return d.res.Raw
}

// Field is the keyword extractor: a pure lookup of one RFC 7946 member.
func Field(d Document, k Keyword) (Document, bool) {
	return d.Get(string(k))
}
