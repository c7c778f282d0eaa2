// Package document holds the in-memory model of a Swagger v2 spec file.
//
// The JSON tree is decoded with key order preserved: objects are
// *orderedmap.OrderedMap, arrays are []any and scalars keep the types
// encoding/json assigns to them. Key order determines the output order,
// so the spec survives a load/transform/save cycle without reshuffling.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf16"

	"github.com/iancoleman/orderedmap"
)

const (
	// PathsKey is the top-level field holding the API operations.
	PathsKey = "paths"

	// DefinitionsKey is the top-level field holding the model definitions.
	DefinitionsKey = "definitions"
)

// Document is a loaded Swagger v2 spec.
// It owns its entire subtree; all passes mutate it in place.
type Document struct {
	root *orderedmap.OrderedMap
}

// New creates a Document from an already normalized root object.
func New(root *orderedmap.OrderedMap) *Document {
	return &Document{root: root}
}

// Parse decodes a spec from raw JSON bytes.
func Parse(data []byte) (*Document, error) {
	root := orderedmap.New()
	if err := json.Unmarshal(data, root); err != nil {
		return nil, fmt.Errorf("decoding spec: %w", err)
	}
	return &Document{root: normalizeObject(root)}, nil
}

// Load reads and decodes a spec file.
func Load(filePath string) (*Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return doc, nil
}

// Root returns the root object of the document.
func (d *Document) Root() *orderedmap.OrderedMap {
	return d.root
}

// Definitions returns the definitions table or nil if the document has none.
func (d *Document) Definitions() *orderedmap.OrderedMap {
	v, ok := d.root.Get(DefinitionsKey)
	if !ok {
		return nil
	}
	defs, ok := v.(*orderedmap.OrderedMap)
	if !ok {
		return nil
	}
	return defs
}

// Bytes serializes the document: 2-space indentation, keys in their
// current order, non-ASCII characters escaped.
func (d *Document) Bytes() ([]byte, error) {
	data, err := json.MarshalIndent(d.root, "", "  ")
	if err != nil {
		return nil, err
	}
	return escapeNonASCII(data), nil
}

// Save writes the serialized document to filePath,
// creating parent directories as needed.
func (d *Document) Save(filePath string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0o644)
}

// normalize rebuilds a decoded JSON value so that every object in the tree
// is a *orderedmap.OrderedMap. The orderedmap package decodes nested objects
// as struct values; mutating a value copy would not stick, so passes need
// pointers all the way down.
func normalize(v any) any {
	switch t := v.(type) {
	case orderedmap.OrderedMap:
		return normalizeObject(&t)
	case *orderedmap.OrderedMap:
		return normalizeObject(t)
	case []any:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	default:
		return v
	}
}

func normalizeObject(src *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	dst := orderedmap.New()
	for _, key := range src.Keys() {
		v, _ := src.Get(key)
		dst.Set(key, normalize(v))
	}
	return dst
}

// escapeNonASCII rewrites every rune above 0x7f as a \uXXXX escape,
// using surrogate pairs outside the basic plane. JSON only allows
// such runes inside strings, so a blanket byte pass is safe.
func escapeNonASCII(data []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(data))
	for _, r := range string(data) {
		switch {
		case r < 0x80:
			buf.WriteRune(r)
		case r > 0xffff:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&buf, `\u%04x\u%04x`, hi, lo)
		default:
			fmt.Fprintf(&buf, `\u%04x`, r)
		}
	}
	return buf.Bytes()
}
