// Package pkg provides the libraries behind tlds, a renderer for RDF graphs.
//
// # Overview
//
// tlds turns a set of triples into a human-readable document: an HTML table
// annotated with RDFa, Graphviz DOT source, or an SVG diagram. The pkg
// directory is organized into four areas:
//
//  1. [rdf] - Terms, triples and an in-memory graph
//  2. [rdfa] and [render] - Serializers and the media type registry
//  3. [io] - JSON and YAML triple documents
//  4. [pipeline] - Orchestration (load → hash → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	JSON / YAML triple document
//	         ↓
//	    [io] package (decode and validate terms)
//	         ↓
//	    [rdf] package (graph in insertion order)
//	         ↓
//	    [render] package (pick a serializer by media type)
//	         ↓
//	    HTML+RDFa / DOT / SVG output
//
// # Quick Start
//
// Render a graph as an RDFa table:
//
//	import (
//	    "os"
//	    "github.com/factsmission/tlds/pkg/rdf"
//	    "github.com/factsmission/tlds/pkg/rdfa"
//	)
//
//	g := rdf.NewGraph(rdf.Triple{
//	    Subject:   rdf.IRI("http://example.org/alice"),
//	    Predicate: "http://xmlns.com/foaf/0.1/name",
//	    Object:    rdf.NewLiteral("Alice", ""),
//	})
//	err := rdfa.New().Serialize(os.Stdout, g, rdfa.FormatHTML)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [rdf] - IRIs, blank nodes and literals as a sealed term interface, the
// [rdf.Graph] read interface and the [rdf.MemGraph] implementation.
//
// [rdfa] - The RDFa table serializer. Subjects that are never referenced
// come first; blank nodes get per-render labels.
//
// [render] - The format registry with HTTP Accept negotiation, plus the
// [render/nodelink] DOT and SVG renderer.
//
// ## Infrastructure
//
// [cache] - File, Redis and no-op caches for graphs and rendered artifacts.
//
// [config] - TOML or YAML settings for rendering, caching and serving.
//
// [observability] - Hooks for metrics, with a Prometheus implementation.
//
// [errors] - Coded errors shared by the CLI and the HTTP server.
//
// ## Orchestration
//
// [pipeline] - A Runner that loads a graph from a file, a stored hash or
// memory, and renders it through the cache.
//
// # Command Line and Server
//
// The tlds binary (cmd/tlds) wraps these packages. "tlds render" renders a
// file; "tlds serve" exposes the same pipeline over HTTP.
//
// [rdf]: github.com/factsmission/tlds/pkg/rdf
// [rdfa]: github.com/factsmission/tlds/pkg/rdfa
// [render]: github.com/factsmission/tlds/pkg/render
// [render/nodelink]: github.com/factsmission/tlds/pkg/render/nodelink
// [io]: github.com/factsmission/tlds/pkg/io
// [pipeline]: github.com/factsmission/tlds/pkg/pipeline
// [cache]: github.com/factsmission/tlds/pkg/cache
// [config]: github.com/factsmission/tlds/pkg/config
// [observability]: github.com/factsmission/tlds/pkg/observability
// [errors]: github.com/factsmission/tlds/pkg/errors
package pkg
