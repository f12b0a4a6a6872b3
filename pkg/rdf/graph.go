package rdf

import (
	"errors"
	"iter"
)

var (
	// ErrNilSubject is returned by [MemGraph.Add] when the triple has no subject.
	ErrNilSubject = errors.New("triple subject must not be nil")

	// ErrEmptyPredicate is returned by [MemGraph.Add] when the predicate IRI
	// is empty.
	ErrEmptyPredicate = errors.New("triple predicate must not be empty")

	// ErrNilObject is returned by [MemGraph.Add] when the triple has no object.
	ErrNilObject = errors.New("triple object must not be nil")
)

// Triple is a single subject–predicate–object statement.
// Triples are comparable values and may be used as map keys.
type Triple struct {
	Subject   Subject
	Predicate IRI
	Object    Term
}

// Graph is a read-only view of a set of triples.
//
// Implementations must return each distinct triple at most once from
// [Graph.Triples], and [Graph.Filter] must return exactly the triples of
// Triples that match the pattern.
type Graph interface {
	// Triples iterates over every triple in the graph.
	Triples() iter.Seq[Triple]

	// Filter iterates over the triples matching the pattern. A nil subject,
	// empty predicate or nil object matches anything.
	Filter(s Subject, p IRI, o Term) iter.Seq[Triple]
}

// Matches reports whether t matches the pattern used by [Graph.Filter].
func (t Triple) Matches(s Subject, p IRI, o Term) bool {
	if s != nil && t.Subject != s {
		return false
	}
	if p != "" && t.Predicate != p {
		return false
	}
	if o != nil && t.Object != o {
		return false
	}
	return true
}

// MemGraph is an in-memory [Graph] that keeps triples in insertion order
// and indexes them by subject.
//
// The zero value is not usable - use [NewGraph].
// MemGraph is not safe for concurrent writes; concurrent reads are fine.
type MemGraph struct {
	triples   []Triple
	seen      map[Triple]struct{}
	bySubject map[Subject][]int
}

// NewGraph creates an empty graph, optionally seeded with triples.
// Seed triples must be valid; NewGraph panics otherwise.
func NewGraph(triples ...Triple) *MemGraph {
	g := &MemGraph{
		seen:      make(map[Triple]struct{}),
		bySubject: make(map[Subject][]int),
	}
	for _, t := range triples {
		if err := g.Add(t); err != nil {
			panic(err)
		}
	}
	return g
}

// Add inserts a triple. Adding a triple that is already present is a no-op.
// Returns ErrNilSubject, ErrEmptyPredicate or ErrNilObject for incomplete
// triples.
func (g *MemGraph) Add(t Triple) error {
	switch {
	case t.Subject == nil:
		return ErrNilSubject
	case t.Predicate == "":
		return ErrEmptyPredicate
	case t.Object == nil:
		return ErrNilObject
	}
	if _, dup := g.seen[t]; dup {
		return nil
	}
	g.seen[t] = struct{}{}
	g.bySubject[t.Subject] = append(g.bySubject[t.Subject], len(g.triples))
	g.triples = append(g.triples, t)
	return nil
}

// Len returns the number of distinct triples.
func (g *MemGraph) Len() int { return len(g.triples) }

// Contains reports whether the triple is in the graph.
func (g *MemGraph) Contains(t Triple) bool {
	_, ok := g.seen[t]
	return ok
}

// Subjects returns the distinct subjects in first-insertion order.
func (g *MemGraph) Subjects() []Subject {
	out := make([]Subject, 0, len(g.bySubject))
	seen := make(map[Subject]bool, len(g.bySubject))
	for _, t := range g.triples {
		if !seen[t.Subject] {
			seen[t.Subject] = true
			out = append(out, t.Subject)
		}
	}
	return out
}

// Triples iterates over all triples in insertion order.
func (g *MemGraph) Triples() iter.Seq[Triple] {
	return func(yield func(Triple) bool) {
		for _, t := range g.triples {
			if !yield(t) {
				return
			}
		}
	}
}

// Filter iterates over the matching triples in insertion order.
// A bound subject uses the subject index.
func (g *MemGraph) Filter(s Subject, p IRI, o Term) iter.Seq[Triple] {
	return func(yield func(Triple) bool) {
		if s != nil {
			for _, i := range g.bySubject[s] {
				t := g.triples[i]
				if t.Matches(nil, p, o) && !yield(t) {
					return
				}
			}
			return
		}
		for _, t := range g.triples {
			if t.Matches(nil, p, o) && !yield(t) {
				return
			}
		}
	}
}

var _ Graph = (*MemGraph)(nil)
