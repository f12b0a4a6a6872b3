package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/factsmission/tlds/pkg/errors"
	"github.com/factsmission/tlds/pkg/rdf"
)

// Media types served by [Renderer].
const (
	FormatDOT = "text/vnd.graphviz"
	FormatSVG = "image/svg+xml"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed appends the datatype to literal labels.
	// When false, only the lexical form is shown.
	Detailed bool
}

// Renderer serializes graphs as DOT source or Graphviz-rendered SVG.
type Renderer struct {
	opts Options
}

// New creates a node-link renderer.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// SupportedFormats returns [FormatDOT] and [FormatSVG].
func (r *Renderer) SupportedFormats() []string {
	return []string{FormatDOT, FormatSVG}
}

// Serialize writes g to w as DOT or SVG.
func (r *Renderer) Serialize(w io.Writer, g rdf.Graph, format string) error {
	var out []byte
	switch format {
	case FormatDOT:
		out = []byte(ToDOT(g, r.opts))
	case FormatSVG:
		svg, err := RenderSVG(ToDOT(g, r.opts))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render svg")
		}
		out = svg
	default:
		return errors.NewUnsupportedFormat(format, r.SupportedFormats()...)
	}
	if _, err := w.Write(out); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", format)
	}
	return nil
}

// ToDOT converts a graph to Graphviz DOT format for node-link visualization.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Subjects and resource objects become one node each. Node IDs are minted
// per kind (r0, r1, ... for IRIs, b0, ... for blank nodes, l0, ... for
// literals) so no IRI can collide with a blank node or a literal box; the
// visible text is carried in the label attribute. Blank nodes are labelled
// _:0, _:1, ... in first-encounter order. Every literal occurrence gets its
// own grey box so shared values do not merge unrelated subjects.
//
// ToDOT panics if g yields a term type outside the rdf package.
func ToDOT(g rdf.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	labels := rdf.NewLabelTable("_:")
	ids := make(map[rdf.Subject]string)
	var edges []string
	var iris, blanks, literals int

	node := func(s rdf.Subject) string {
		if id, ok := ids[s]; ok {
			return id
		}
		var id string
		switch s.(type) {
		case rdf.BlankNode:
			id = "b" + strconv.Itoa(blanks)
			blanks++
		default:
			id = "r" + strconv.Itoa(iris)
			iris++
		}
		ids[s] = id
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(resourceAttrs(s, labels.Label(s)), ", "))
		return id
	}

	for t := range g.Triples() {
		from := node(t.Subject)
		var to string
		switch o := t.Object.(type) {
		case rdf.IRI:
			to = node(o)
		case rdf.BlankNode:
			to = node(o)
		case rdf.Literal:
			to = "l" + strconv.Itoa(literals)
			literals++
			fmt.Fprintf(&buf, "  %s [label=%q, shape=box, fillcolor=lightgrey];\n", to, fmtLiteral(o, opts.Detailed))
		default:
			panic(fmt.Sprintf("nodelink: unexpected term type %T", t.Object))
		}
		edges = append(edges, fmt.Sprintf("  %s -> %s [label=%q];\n", from, to, string(t.Predicate)))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func resourceAttrs(s rdf.Subject, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if _, ok := s.(rdf.BlankNode); ok {
		attrs = append(attrs, "style=\"filled,dashed\"")
	}
	return attrs
}

func fmtLiteral(l rdf.Literal, detailed bool) string {
	if !detailed {
		return l.Lexical
	}
	return l.Lexical + "\n" + string(l.Datatype)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based <svg> header with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
