package rdfa

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/charmbracelet/log"

	"github.com/factsmission/tlds/pkg/errors"
	"github.com/factsmission/tlds/pkg/rdf"
)

// FormatHTML is the only format identifier the serializer accepts.
const FormatHTML = "text/html"

// Option configures a [Serializer].
type Option func(*Serializer)

// WithRawOutput disables escaping of labels and literal text. Output is then
// byte-compatible with consumers that expect unescaped markup, and is unsafe
// for values containing quotes or angle brackets.
func WithRawOutput() Option {
	return func(s *Serializer) { s.raw = true }
}

// WithLogger sets the logger used for per-render debug summaries.
func WithLogger(l *log.Logger) Option {
	return func(s *Serializer) {
		if l != nil {
			s.logger = l
		}
	}
}

// Serializer renders graphs as RDFa-annotated HTML tables.
//
// A Serializer only holds options; every call to [Serializer.Serialize]
// creates its own label table and partitions, so one Serializer may be used
// from several goroutines.
type Serializer struct {
	raw    bool
	logger *log.Logger
}

// New creates a serializer. By default all attribute values and text are
// HTML-escaped.
func New(opts ...Option) *Serializer {
	s := &Serializer{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SupportedFormats returns the format identifiers accepted by Serialize.
func (s *Serializer) SupportedFormats() []string {
	return []string{FormatHTML}
}

// Serialize writes g to w as an HTML table.
//
// format must be exactly "text/html"; any other value fails with an
// [errors.UnsupportedFormatError] before anything is written. Write failures
// are returned as IO_ERROR and leave w holding partial output, which callers
// must discard. w is flushed but never closed.
//
// Subjects that never occur as objects are rendered first, then the rest.
// Within each group subjects, predicates and values appear in the order the
// graph first yields them. Serialize panics if g yields a term type outside
// the rdf package.
func (s *Serializer) Serialize(w io.Writer, g rdf.Graph, format string) error {
	if format != FormatHTML {
		return errors.NewUnsupportedFormat(format, FormatHTML)
	}

	exclusive, other := partition(g)
	r := &render{
		out:    bufio.NewWriter(w),
		labels: rdf.NewLabelTable("_:"),
		graph:  g,
		escape: !s.raw,
	}

	r.println("<table>")
	r.writeResources(exclusive)
	r.writeResources(other)
	r.println("</table>")
	r.flush()

	if r.err != nil {
		return errors.Wrap(errors.ErrCodeIO, r.err, "write html")
	}

	s.logger.Debug("rendered graph",
		"exclusive", len(exclusive),
		"other", len(other),
		"blank_nodes", r.labels.Len())
	return nil
}

// render is the state of one Serialize call. The first write error sticks
// and turns every later write into a no-op.
type render struct {
	out    *bufio.Writer
	labels *rdf.LabelTable
	graph  rdf.Graph
	escape bool
	err    error
}

func (r *render) println(s string) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintln(r.out, s)
}

func (r *render) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.out, format, args...)
}

func (r *render) flush() {
	if r.err != nil {
		return
	}
	r.err = r.out.Flush()
}

// text prepares a string for embedding in an attribute value or element
// content.
func (r *render) text(s string) string {
	if !r.escape {
		return s
	}
	return html.EscapeString(s)
}

func (r *render) label(s rdf.Subject) string {
	return r.text(r.labels.Label(s))
}

func (r *render) writeResources(nodes []rdf.Subject) {
	for _, node := range nodes {
		label := r.label(node)
		r.printf("    <tbody about='%s'>\n", label)
		r.printf("        <tr><td colspan='2'><h1>%s</h1></td></tr>\n", label)
		r.writeProperties(node)
		r.println("    </tbody>")
		r.flush()
	}
}

func (r *render) writeProperties(node rdf.Subject) {
	for _, group := range groupProperties(r.graph, node) {
		if len(group.values) == 0 {
			continue
		}
		pred := r.label(group.predicate)
		r.println("        <tr>")
		r.printf("            <td rowspan='%d'><a href='%s'>%s</a></td>\n", len(group.values), pred, pred)
		for i, value := range group.values {
			if i > 0 {
				r.println("        </tr>")
				r.println("        <tr>")
			}
			r.printf("            <td>%s</td>\n", r.valueCell(pred, value))
		}
		r.println("        </tr>")
	}
}

// valueCell renders one object. pred is the already-escaped predicate label.
func (r *render) valueCell(pred string, value rdf.Term) string {
	switch v := value.(type) {
	case rdf.IRI:
		label := r.label(v)
		return fmt.Sprintf("<a property='%s' resource='%s' href='%s'>%s</a>", pred, label, label, label)
	case rdf.BlankNode:
		label := r.label(v)
		return fmt.Sprintf("<a property='%s' resource='%s'>%s</a>", pred, label, label)
	case rdf.Literal:
		return fmt.Sprintf("<span datatype='%s' property='%s'>%s</span>",
			r.text(string(v.Datatype)), pred, r.text(v.Lexical))
	default:
		panic(fmt.Sprintf("rdfa: unexpected term type %T", value))
	}
}
