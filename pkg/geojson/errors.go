package geojson

import "errors"

var (
	ErrInvalidJSON = errors.New("geojson: invalid json")
	// ErrTypeNotFound means the document has no "type" member.
	ErrTypeNotFound = errors.New("geojson: type not found")
	// ErrUnknownType means the "type" member is outside RFC 7946. Documents
	// carrying it are not GeoJSON at all, so callers should treat it as fatal.
	ErrUnknownType = errors.New("geojson: type not recognized")
	// ErrTypeNotAccepted means a well-formed type that the entry point does not take.
	ErrTypeNotAccepted = errors.New("geojson: type not accepted here")
	// ErrStructure means the document violates the contract of its type.
	ErrStructure = errors.New("geojson: document is not valid")
	// ErrSchemaInvalid means a bundled contract could not be loaded or compiled.
	ErrSchemaInvalid = errors.New("geojson: schema is not valid")
	// ErrGeometryAbsent marks a feature whose geometry is missing or null.
	ErrGeometryAbsent = errors.New("geojson: feature has no geometry")
)
