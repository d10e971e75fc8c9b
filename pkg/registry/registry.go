// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed records.json
var embeddedRecords []byte

// Registry holds compiled-ready record schemas keyed by name.
type Registry struct {
	catalog RecordRegistry
	byName  map[string]RecordSchema
}

// Load parses the embedded record catalog.
func Load() (*Registry, error) {
	return parse(embeddedRecords)
}

// LoadFile parses a record catalog from disk, for tooling that lints
// out-of-tree catalogs.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*Registry, error) {
	var catalog RecordRegistry
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse record registry: %w", err)
	}
	byName := make(map[string]RecordSchema, len(catalog.Records))
	for _, rec := range catalog.Records {
		byName[rec.Name] = rec
	}
	return &Registry{catalog: catalog, byName: byName}, nil
}

// Version returns the catalog version string.
func (r *Registry) Version() string {
	return r.catalog.Version
}

// Names lists the registered record names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}

// Validate checks doc against the named schema. The error details list every
// failed constraint, one per line.
func (r *Registry) Validate(name string, doc interface{}) error {
	rec, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("unknown record schema %q", name)
	}

	schemaLoader := gojsonschema.NewGoLoader(rec.Schema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error for %q: %w", name, err)
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("record does not match %q schema: %s", name, strings.Join(details, "; "))
}

// ValidateValue marshals v through JSON and validates the resulting document.
// Use this for typed structs; Validate expects map/slice documents.
func (r *Registry) ValidateValue(name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %q document: %w", name, err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to round-trip %q document: %w", name, err)
	}
	return r.Validate(name, doc)
}
