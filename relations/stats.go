package relations

import (
	"github.com/c360studio/archgov/adr"
)

// Stats summarises a document collection's relationship graph.
type Stats struct {
	Documents    int `json:"documents"`
	Dependencies int `json:"dependencies"`
	Supersedes   int `json:"supersedes"`
	Related      int `json:"related"`
	// Isolated lists documents with no relation entries at all.
	Isolated []string `json:"isolated"`
	// Orphans maps each unknown target id to the documents referencing it.
	Orphans map[string][]string `json:"orphans"`
}

// ComputeStats counts edges and finds isolated documents and orphan references.
func ComputeStats(docs map[string]*adr.Document) Stats {
	s := Stats{Documents: len(docs), Isolated: []string{}, Orphans: map[string][]string{}}

	for _, id := range sortedIDs(docs) {
		doc := docs[id]
		s.Dependencies += len(doc.DependsOn())
		s.Supersedes += len(doc.Supersedes())
		s.Related += len(doc.Related())

		if doc.Relations.Total() == 0 {
			s.Isolated = append(s.Isolated, id)
		}

		for _, t := range adr.RelationTypes {
			for _, target := range doc.Targets(t).Sorted() {
				if _, ok := docs[target]; ok {
					continue
				}
				refs := s.Orphans[target]
				if len(refs) == 0 || refs[len(refs)-1] != id {
					s.Orphans[target] = append(refs, id)
				}
			}
		}
	}
	return s
}
