package collections

import "strings"

// Registry maps collection names to their schemas. It is populated once
// during startup and read concurrently afterwards; Register must not be
// called once validation begins. The registry holds no validation logic of
// its own so multiple collections can share one validation engine.
type Registry struct {
	schemas map[string]Schema
}

// NewRegistry builds a registry pre-populated with the provided schemas.
func NewRegistry(schemas ...Schema) (*Registry, error) {
	registry := &Registry{schemas: make(map[string]Schema, len(schemas))}
	for _, schema := range schemas {
		if err := registry.Register(schema); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Register adds or replaces the schema stored under its collection name.
func (r *Registry) Register(schema Schema) error {
	if strings.TrimSpace(schema.Name) == "" {
		return ErrSchemaNameRequired
	}
	if len(schema.Fields) == 0 {
		return ErrSchemaNoFields
	}
	if r.schemas == nil {
		r.schemas = make(map[string]Schema)
	}
	r.schemas[schema.Name] = schema
	return nil
}

// Lookup returns the schema registered for name. There is no implicit
// default; unregistered names fail with ErrUnknownCollection.
func (r *Registry) Lookup(name string) (Schema, error) {
	if r != nil {
		if schema, ok := r.schemas[name]; ok {
			return schema, nil
		}
	}
	return Schema{}, &UnknownCollectionError{Collection: name}
}

// Collections lists registered collection names. Order is not guaranteed;
// callers needing determinism should sort.
func (r *Registry) Collections() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	return names
}

// Validate resolves the schema for doc's collection and runs the validator.
func (r *Registry) Validate(collection string, doc RawDocument) (*Record, error) {
	schema, err := r.Lookup(collection)
	if err != nil {
		return nil, err
	}
	return Validate(schema, doc)
}
