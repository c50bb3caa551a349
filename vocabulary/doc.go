// Package vocabulary defines the predicates and IRIs used to describe
// decision documents, their relationships, and their rule sets as a graph.
//
// Predicates are dotted names (adr.rel.depends_on). Each one is registered
// at init with a description, a data type and the IRI it serializes to, so
// exporters can translate predicates without a hard-coded table.
package vocabulary
