// Package export serializes the decision graph and rule sets as RDF
// (Turtle, N-Triples, JSON-LD) with PROV-O/BFO/CCO alignment, or as a
// plain JSON model.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/archgov/vocabulary"
)

// Profile determines which ontology type assertions are included in the export.
type Profile string

const (
	// ProfileMinimal includes the archgov class plus its PROV-O or SKOS alignment.
	ProfileMinimal Profile = vocabulary.ProfileMinimal

	// ProfileBFO includes BFO type assertions plus minimal profile.
	ProfileBFO Profile = vocabulary.ProfileBFO

	// ProfileCCO includes CCO type assertions plus BFO profile.
	ProfileCCO Profile = vocabulary.ProfileCCO
)

// ParseProfile resolves a profile name.
func ParseProfile(s string) (Profile, error) {
	switch p := Profile(strings.ToLower(strings.TrimSpace(s))); p {
	case ProfileMinimal, ProfileBFO, ProfileCCO:
		return p, nil
	case "":
		return ProfileMinimal, nil
	default:
		return "", fmt.Errorf("unknown export profile: %s", s)
	}
}

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"

	// FormatJSON produces the plain JSON model (see Model).
	FormatJSON Format = "json"
)

const rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// IRI marks a triple object as a resource rather than a literal.
type IRI string

// Triple is a predicate-object pair of an Entity.
type Triple struct {
	Predicate string
	Object    any
}

// Entity is an exportable subject with its type and triples.
type Entity struct {
	IRI     string
	Type    vocabulary.EntityType
	Triples []Triple
}

// RDFExporter exports entities to RDF with configurable ontology profiles.
type RDFExporter struct {
	profile  Profile
	entities []Entity
	prefixes map[string]string
}

// NewRDFExporter creates a new RDF exporter with the specified profile.
func NewRDFExporter(profile Profile) *RDFExporter {
	return &RDFExporter{
		profile:  profile,
		entities: make([]Entity, 0),
		prefixes: defaultPrefixes(),
	}
}

// defaultPrefixes returns the standard namespace prefixes for RDF export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":     "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":    "http://www.w3.org/2000/01/rdf-schema#",
		"xsd":     "http://www.w3.org/2001/XMLSchema#",
		"dc":      "http://purl.org/dc/terms/",
		"skos":    "http://www.w3.org/2004/02/skos/core#",
		"prov":    "http://www.w3.org/ns/prov#",
		"bfo":     "http://purl.obolibrary.org/obo/",
		"cco":     "http://www.ontologyrepository.com/CommonCoreOntologies/",
		"archgov": vocabulary.Namespace,
		"entity":  vocabulary.EntityNamespace,
	}
}

// AddEntity adds an entity to be exported.
func (e *RDFExporter) AddEntity(entity Entity) {
	e.entities = append(e.entities, entity)
}

// AddEntities adds entities in order.
func (e *RDFExporter) AddEntities(entities ...Entity) {
	e.entities = append(e.entities, entities...)
}

// Len returns the number of entities added.
func (e *RDFExporter) Len() int {
	return len(e.entities)
}

// Export serializes all entities to the specified RDF format.
func (e *RDFExporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples(), nil
	case FormatJSONLD:
		return e.toJSONLD(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (e *RDFExporter) types(entity Entity) []string {
	return vocabulary.GetTypesForEntity(entity.Type, string(e.profile))
}

func (e *RDFExporter) toTurtle() string {
	w := NewTurtleWriter()
	for prefix, iri := range e.prefixes {
		w.SetPrefix(prefix, iri)
	}
	w.WritePrefixes()

	for _, entity := range e.entities {
		types := e.types(entity)
		if len(types) == 0 && len(entity.Triples) == 0 {
			continue
		}

		w.WriteSubject(entity.IRI)
		for i, typeIRI := range types {
			w.WriteType(typeIRI, i == len(types)-1 && len(entity.Triples) == 0)
		}
		for i, triple := range entity.Triples {
			w.WritePredicate(vocabulary.GetPredicateIRI(triple.Predicate), triple.Object, i == len(entity.Triples)-1)
		}
		w.WriteBlank()
	}

	return w.String()
}

func (e *RDFExporter) toNTriples() string {
	w := NewNTriplesWriter()
	for _, entity := range e.entities {
		for _, typeIRI := range e.types(entity) {
			w.WriteTypeTriple(entity.IRI, typeIRI)
		}
		for _, triple := range entity.Triples {
			w.WriteTriple(entity.IRI, vocabulary.GetPredicateIRI(triple.Predicate), triple.Object)
		}
	}
	return w.String()
}

// toJSONLD groups repeated predicates of an entity into arrays.
func (e *RDFExporter) toJSONLD() string {
	w := NewJSONLDWriter()
	w.SetContext(e.prefixes)

	for _, entity := range e.entities {
		props := make(map[string]any, len(entity.Triples))
		for _, triple := range entity.Triples {
			iri := vocabulary.GetPredicateIRI(triple.Predicate)
			value := formatObjectJSONLD(triple.Object)
			switch existing := props[iri].(type) {
			case nil:
				props[iri] = value
			case []any:
				props[iri] = append(existing, value)
			default:
				props[iri] = []any{existing, value}
			}
		}
		w.AddNode(entity.IRI, e.types(entity), props)
	}

	return w.String()
}

// formatObject formats an object value for Turtle output.
func formatObject(obj any) string {
	switch v := obj.(type) {
	case IRI:
		return fmt.Sprintf("<%s>", v)
	case time.Time:
		return fmt.Sprintf("\"%s\"^^xsd:dateTime", v.UTC().Format(time.RFC3339))
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("<%s>", v)
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^xsd:dateTime", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^xsd:integer", v)
	case float32, float64:
		return fmt.Sprintf("\"%f\"^^xsd:decimal", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^xsd:boolean", v)
	default:
		return fmt.Sprintf("\"%s\"", escapeString(fmt.Sprint(v)))
	}
}

// formatObjectNTriples formats an object value for N-Triples output.
func formatObjectNTriples(obj any) string {
	const xsd = "http://www.w3.org/2001/XMLSchema#"
	switch v := obj.(type) {
	case IRI:
		return fmt.Sprintf("<%s>", v)
	case time.Time:
		return fmt.Sprintf("\"%s\"^^<%sdateTime>", v.UTC().Format(time.RFC3339), xsd)
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("<%s>", v)
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^<%sdateTime>", v, xsd)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^<%sinteger>", v, xsd)
	case float32, float64:
		return fmt.Sprintf("\"%f\"^^<%sdecimal>", v, xsd)
	case bool:
		return fmt.Sprintf("\"%t\"^^<%sboolean>", v, xsd)
	default:
		return fmt.Sprintf("\"%s\"", escapeString(fmt.Sprint(v)))
	}
}

// formatObjectJSONLD converts an object value to its JSON-LD form.
func formatObjectJSONLD(obj any) any {
	switch v := obj.(type) {
	case IRI:
		return map[string]any{"@id": string(v)}
	case time.Time:
		return map[string]any{"@value": v.UTC().Format(time.RFC3339), "@type": "xsd:dateTime"}
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return map[string]any{"@id": v}
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return map[string]any{"@value": v, "@type": "xsd:dateTime"}
		}
		return v
	case int, int32, int64, float32, float64, bool:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
