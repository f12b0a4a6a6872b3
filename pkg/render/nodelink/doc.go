// Package nodelink renders RDF graphs as node-link diagrams.
//
// # Overview
//
// Resources (IRIs and blank nodes) appear as ellipses, literals as grey
// boxes, and every triple as an arrow labelled with its predicate. It is an
// alternative to the RDFa table for a quick visual overview of a graph.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [Renderer] wraps both steps behind the media types "text/vnd.graphviz" and
// "image/svg+xml" so it can be registered with a render registry.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
