// Package keys builds cache keys for decode results and ingested documents.
package keys

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/tidwall/gjson"
)

const (
	resultPrefix   = "geojson:result:"
	documentPrefix = "geojson:doc:"

	maxIDLen = 96
)

// Result keys a decode by document content, option fingerprint and
// dimension. Insignificant JSON whitespace does not change the key.
func Result(body []byte, fingerprint, dim string) string {
	return fmt.Sprintf("%s%s:o=%016x:d=%016x", resultPrefix, sanitize(dim), xxhash.Sum64String(fingerprint), ContentHash(body))
}

// Document keys an ingested document by its id. Long ids are truncated and
// suffixed with a hash of the full id.
func Document(id string) string {
	safe := sanitize(strings.TrimSpace(id))
	if len(safe) > maxIDLen {
		return fmt.Sprintf("%s%s:h=%016x", documentPrefix, safe[:maxIDLen], xxhash.Sum64String(id))
	}
	return documentPrefix + safe
}

// ContentHash hashes the compacted JSON text, falling back to the raw bytes
// when body is not valid JSON.
func ContentHash(body []byte) uint64 {
	if !gjson.ValidBytes(body) {
		return xxhash.Sum64(body)
	}
	return xxhash.Sum64String(gjson.GetBytes(body, "@ugly").Raw)
}

func sanitize(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))

	var prev rune
	for _, r := range s {
		var out rune
		switch {
		case unicode.IsSpace(r):
			out = '_'
		case isAlphaNum(r) || r == ':' || r == '_' || r == '-' || r == '.':
			out = r
		default:
			// Any other rune (including non-ASCII) becomes '-'
			out = '-'
		}
		if (out == '_' || out == '-') && out == prev {
			continue
		}
		b.WriteRune(out)
		prev = out
	}
	return b.String()
}

func isAlphaNum(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
