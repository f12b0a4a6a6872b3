package rdf

import (
	"github.com/google/uuid"
)

// Term is a value that can appear in a triple.
// The set of implementations is closed: [IRI], [BlankNode] and [Literal].
type Term interface {
	String() string
	isTerm()
}

// Subject is a term that can appear in subject position: an [IRI] or a
// [BlankNode]. Literals are never subjects.
type Subject interface {
	Term
	isSubject()
}

// IRI is a labeled node with global identity. Two IRIs are the same node
// iff their strings are equal.
type IRI string

func (i IRI) String() string { return string(i) }
func (IRI) isTerm()          {}
func (IRI) isSubject()       {}

// BlankNode is an anonymous node. It has no global name; two blank nodes are
// equal only if they were obtained from the same [NewBlankNode] call.
//
// The zero value is a valid but shared node and should not be used.
type BlankNode struct {
	id uuid.UUID
}

// NewBlankNode mints a blank node distinct from every other blank node.
func NewBlankNode() BlankNode {
	return BlankNode{id: uuid.New()}
}

// String returns a debugging representation. It is not the label used when
// rendering; renderers assign their own per-render labels.
func (b BlankNode) String() string { return "_:" + b.id.String() }
func (BlankNode) isTerm()          {}
func (BlankNode) isSubject()       {}

// Literal is a typed lexical value. Literals compare by value.
type Literal struct {
	Lexical  string
	Datatype IRI
}

// NewLiteral returns a literal with the given datatype.
// An empty datatype defaults to xsd:string.
func NewLiteral(lexical string, datatype IRI) Literal {
	if datatype == "" {
		datatype = XSDString
	}
	return Literal{Lexical: lexical, Datatype: datatype}
}

// String returns the literal in N-Triples-like notation.
func (l Literal) String() string { return `"` + l.Lexical + `"^^<` + string(l.Datatype) + `>` }
func (Literal) isTerm()          {}

// IsResource reports whether t is a node (IRI or blank node) rather than a
// literal.
func IsResource(t Term) bool {
	_, ok := t.(Subject)
	return ok
}
