package vocabulary

import (
	"maps"
	"slices"
	"sync"
)

// PredicateMetadata describes one registered predicate.
type PredicateMetadata struct {
	Name        string
	Description string
	DataType    string
	IRI         string
}

// Option configures a predicate at registration.
type Option func(*PredicateMetadata)

// WithDescription sets the human-readable description.
func WithDescription(d string) Option {
	return func(m *PredicateMetadata) { m.Description = d }
}

// WithDataType sets the object data type: string, int, bool, datetime or entity_id.
func WithDataType(t string) Option {
	return func(m *PredicateMetadata) { m.DataType = t }
}

// WithIRI sets the IRI the predicate serializes to.
func WithIRI(iri string) Option {
	return func(m *PredicateMetadata) { m.IRI = iri }
}

var (
	registryMu sync.RWMutex
	registry   = map[string]PredicateMetadata{}
)

// Register adds or replaces a predicate.
func Register(name string, opts ...Option) {
	meta := PredicateMetadata{Name: name}
	for _, opt := range opts {
		opt(&meta)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = meta
}

// GetPredicateMetadata returns the metadata for name. Unknown predicates
// return a zero value with only Name set.
func GetPredicateMetadata(name string) PredicateMetadata {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if meta, ok := registry[name]; ok {
		return meta
	}
	return PredicateMetadata{Name: name}
}

// GetPredicateIRI returns the IRI for a predicate, falling back to the
// archgov namespace for unregistered names.
func GetPredicateIRI(name string) string {
	if iri := GetPredicateMetadata(name).IRI; iri != "" {
		return iri
	}
	return Namespace + name
}

// Predicates returns the registered predicate names in order.
func Predicates() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(registry))
}
