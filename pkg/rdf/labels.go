package rdf

import "strconv"

// LabelTable assigns display labels to nodes. IRIs are labelled with their
// own string; blank nodes get prefix+n where n is the number of blank nodes
// seen before them, so labels run prefix0, prefix1, ... in first-encounter
// order.
//
// A LabelTable is scoped to one render and must not be shared between
// renders or goroutines.
type LabelTable struct {
	prefix string
	labels map[BlankNode]string
}

// NewLabelTable returns an empty table. Renderers of RDF syntaxes use the
// "_:" prefix.
func NewLabelTable(prefix string) *LabelTable {
	return &LabelTable{prefix: prefix, labels: make(map[BlankNode]string)}
}

// Label returns the label for s, assigning a new one to unseen blank nodes.
func (t *LabelTable) Label(s Subject) string {
	switch n := s.(type) {
	case IRI:
		return string(n)
	case BlankNode:
		if l, ok := t.labels[n]; ok {
			return l
		}
		l := t.prefix + strconv.Itoa(len(t.labels))
		t.labels[n] = l
		return l
	default:
		return s.String()
	}
}

// Len returns the number of blank nodes labelled so far.
func (t *LabelTable) Len() int { return len(t.labels) }
