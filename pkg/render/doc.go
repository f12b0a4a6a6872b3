// Package render dispatches graph serialization by media type.
//
// # Overview
//
// A [Provider] turns an [rdf.Graph] into bytes for the media types it lists.
// A [Registry] collects providers and picks one per request:
//
//	reg := render.Default()
//	err := reg.Serialize(w, g, "text/html; charset=utf-8")
//
// Media types are compared after normalization, so case and parameters do
// not matter. Unknown types fail with an UNSUPPORTED_FORMAT error that lists
// what is registered.
//
// # Content Negotiation
//
// [Registry.Negotiate] maps an HTTP Accept header to a registered type,
// honoring q-values and wildcards:
//
//	mt, ok := reg.Negotiate("image/*;q=0.5, text/html")
//	// mt == "text/html"
//
// # Self-Description
//
// [Registry.Describe] builds a small graph stating which formats a service
// can render, using the tlds:renderers property and dc:format literals. It
// is served by the HTTP host and can itself be rendered by any provider.
//
// # Providers
//
// [Default] registers:
//
//   - [rdfa]: HTML tables annotated with RDFa ("text/html")
//   - [nodelink]: Graphviz DOT and SVG diagrams
//
// [rdfa]: github.com/factsmission/tlds/pkg/rdfa
// [nodelink]: github.com/factsmission/tlds/pkg/render/nodelink
package render
