// Package io provides JSON and YAML import and export for RDF graphs.
//
// # Overview
//
// This package reads and writes triple documents, a plain format for
// handing graphs to the renderers without an RDF parser. Terms use the same
// shape as SPARQL JSON results, so they can be produced by most triple
// stores with little effort.
//
// # Format
//
// A document holds one array of triples:
//
//	{
//	  "triples": [
//	    {
//	      "subject":   {"type": "uri", "value": "http://example.org/alice"},
//	      "predicate": "http://xmlns.com/foaf/0.1/knows",
//	      "object":    {"type": "bnode", "value": "b0"}
//	    },
//	    {
//	      "subject":   {"type": "bnode", "value": "b0"},
//	      "predicate": "http://xmlns.com/foaf/0.1/name",
//	      "object":    {"type": "literal", "value": "Bob"}
//	    }
//	  ]
//	}
//
// The YAML form uses the same keys.
//
// # Term Fields
//
//   - type: "uri", "bnode" or "literal"
//   - value: the IRI, the blank node label, or the lexical form
//   - datatype: literal datatype IRI (defaults to xsd:string)
//
// Subjects must be "uri" or "bnode". Predicates are plain IRI strings.
//
// # Blank Nodes
//
// Blank node labels are scoped to one document: equal labels inside a
// document denote the same node, while the same label in two documents
// yields two different nodes. On export blank nodes are relabelled b0, b1,
// ... in first-encounter order, so exporting the same graph twice produces
// identical bytes.
//
// # Errors
//
// Malformed documents fail with INVALID_INPUT, naming the offending triple
// by index. IRIs are checked with [errors.ValidateIRI].
//
// [errors.ValidateIRI]: github.com/factsmission/tlds/pkg/errors.ValidateIRI
package io
