package io

import (
	"fmt"

	"github.com/factsmission/tlds/pkg/errors"
	"github.com/factsmission/tlds/pkg/rdf"
)

// Term type names.
const (
	typeURI     = "uri"
	typeBNode   = "bnode"
	typeLiteral = "literal"
)

type document struct {
	Triples []triple `json:"triples" yaml:"triples"`
}

type triple struct {
	Subject   term   `json:"subject" yaml:"subject"`
	Predicate string `json:"predicate" yaml:"predicate"`
	Object    term   `json:"object" yaml:"object"`
}

type term struct {
	Type     string `json:"type" yaml:"type"`
	Value    string `json:"value" yaml:"value"`
	Datatype string `json:"datatype,omitempty" yaml:"datatype,omitempty"`
}

// decoder turns document terms into graph terms. blanks scopes blank node
// labels to one document.
type decoder struct {
	blanks map[string]rdf.BlankNode
}

func (d *decoder) graph(doc document) (*rdf.MemGraph, error) {
	g := rdf.NewGraph()
	for i, t := range doc.Triples {
		tr, err := d.triple(t)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "triple %d", i)
		}
		if err := g.Add(tr); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "triple %d", i)
		}
	}
	return g, nil
}

func (d *decoder) triple(t triple) (rdf.Triple, error) {
	s, err := d.subject(t.Subject)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("subject: %w", err)
	}
	if err := errors.ValidateIRI(t.Predicate); err != nil {
		return rdf.Triple{}, fmt.Errorf("predicate: %w", err)
	}
	o, err := d.object(t.Object)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("object: %w", err)
	}
	return rdf.Triple{Subject: s, Predicate: rdf.IRI(t.Predicate), Object: o}, nil
}

func (d *decoder) subject(t term) (rdf.Subject, error) {
	switch t.Type {
	case typeURI:
		if err := errors.ValidateIRI(t.Value); err != nil {
			return nil, err
		}
		return rdf.IRI(t.Value), nil
	case typeBNode:
		if err := errors.ValidateBlankNodeLabel(t.Value); err != nil {
			return nil, err
		}
		b, ok := d.blanks[t.Value]
		if !ok {
			b = rdf.NewBlankNode()
			d.blanks[t.Value] = b
		}
		return b, nil
	case typeLiteral:
		return nil, fmt.Errorf("literal %q cannot be a subject", t.Value)
	default:
		return nil, fmt.Errorf("unknown term type %q", t.Type)
	}
}

func (d *decoder) object(t term) (rdf.Term, error) {
	if t.Type != typeLiteral {
		return d.subject(t)
	}
	dt := rdf.XSDString
	if t.Datatype != "" {
		if err := errors.ValidateIRI(t.Datatype); err != nil {
			return nil, fmt.Errorf("datatype: %w", err)
		}
		dt = rdf.IRI(t.Datatype)
	}
	return rdf.NewLiteral(t.Value, dt), nil
}

func decode(doc document) (*rdf.MemGraph, error) {
	d := &decoder{blanks: make(map[string]rdf.BlankNode)}
	return d.graph(doc)
}

// encode builds a document from g. Blank nodes are relabelled b0, b1, ...
func encode(g rdf.Graph) document {
	labels := rdf.NewLabelTable("b")
	enc := func(t rdf.Term) term {
		switch v := t.(type) {
		case rdf.IRI:
			return term{Type: typeURI, Value: string(v)}
		case rdf.BlankNode:
			return term{Type: typeBNode, Value: labels.Label(v)}
		case rdf.Literal:
			return term{Type: typeLiteral, Value: v.Lexical, Datatype: string(v.Datatype)}
		default:
			panic(fmt.Sprintf("io: unexpected term type %T", t))
		}
	}

	doc := document{Triples: []triple{}}
	for t := range g.Triples() {
		doc.Triples = append(doc.Triples, triple{
			Subject:   enc(t.Subject),
			Predicate: string(t.Predicate),
			Object:    enc(t.Object),
		})
	}
	return doc
}
