// Package rdfa renders RDF graphs as HTML tables annotated with RDFa
// attributes.
//
// # Output
//
// One <tbody> is written per subject. Its first row is a heading with the
// subject label; each further row group lists one predicate and all of its
// distinct values:
//
//	<table>
//	    <tbody about='http://example.org/alice'>
//	        <tr><td colspan='2'><h1>http://example.org/alice</h1></td></tr>
//	        <tr>
//	            <td rowspan='2'><a href='http://xmlns.com/foaf/0.1/knows'>http://xmlns.com/foaf/0.1/knows</a></td>
//	            <td><a property='http://xmlns.com/foaf/0.1/knows' resource='http://example.org/bob' href='http://example.org/bob'>http://example.org/bob</a></td>
//	        </tr>
//	        <tr>
//	            <td><a property='http://xmlns.com/foaf/0.1/knows' resource='_:0'>_:0</a></td>
//	        </tr>
//	    </tbody>
//	</table>
//
// Values are rendered by kind:
//
//   - IRI: <a> with property, resource and href
//   - blank node: <a> with property and resource only
//   - literal: <span> with datatype and property around the lexical form
//
// # Subject Order
//
// Subjects that never appear as an object anywhere in the graph are likely
// top-level entities and are written first. Subjects that are also
// referenced come after. Inside each tier, and for predicates and values,
// the order is the order in which the graph first yields them, so output is
// deterministic for a deterministic [rdf.Graph].
//
// # Blank Nodes
//
// Blank nodes are labelled _:0, _:1, ... in first-encounter order. Labels are
// scoped to one Serialize call; rendering the same graph twice yields the
// same labels, and no state is shared between calls.
//
// # Escaping
//
// Attribute values and text are HTML-escaped unless [WithRawOutput] is given.
//
// # Errors
//
// Only "text/html" is accepted. Other identifiers fail with
// [errors.UnsupportedFormatError] without writing. Failures of the
// underlying writer are returned as IO_ERROR; the partial output is unusable.
//
// [errors.UnsupportedFormatError]: github.com/factsmission/tlds/pkg/errors.UnsupportedFormatError
package rdfa
