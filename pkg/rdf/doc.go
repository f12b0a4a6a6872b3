// Package rdf provides a small RDF data model: terms, triples and a
// read-only graph abstraction.
//
// # Terms
//
// [Term] is a closed sum type with three variants:
//
//   - [IRI]: a labeled node, identified by its string
//   - [BlankNode]: an anonymous node, identified only by itself
//   - [Literal]: a lexical form plus a datatype IRI
//
// [Subject] narrows Term to the node variants. Consumers dispatch with a type
// switch:
//
//	switch o := t.Object.(type) {
//	case rdf.IRI:
//	case rdf.BlankNode:
//	case rdf.Literal:
//	}
//
// # Graphs
//
// [Graph] is the interface renderers consume: full iteration plus a
// pattern filter with wildcards. [MemGraph] is the in-memory implementation
// used by the CLI, the HTTP server and tests:
//
//	alice := rdf.IRI("http://example.org/alice")
//	g := rdf.NewGraph(
//	    rdf.Triple{Subject: alice, Predicate: "http://xmlns.com/foaf/0.1/name", Object: rdf.NewLiteral("Alice", "")},
//	)
//	for t := range g.Filter(alice, "", nil) {
//	    fmt.Println(t.Predicate, t.Object)
//	}
//
// # Concurrency
//
// Terms and triples are immutable values. A MemGraph is safe for concurrent
// reads but not for reads concurrent with [MemGraph.Add].
package rdf
