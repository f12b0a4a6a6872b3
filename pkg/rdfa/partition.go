package rdfa

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/factsmission/tlds/pkg/rdf"
)

// partition splits the subjects of g into those that never occur as an
// object (exclusive) and the rest (other). Both slices keep the order in
// which subjects are first met while iterating g; together they hold every
// subject exactly once.
func partition(g rdf.Graph) (exclusive, other []rdf.Subject) {
	subjects := orderedmap.New[rdf.Subject, struct{}]()
	objects := make(map[rdf.Term]struct{})

	for t := range g.Triples() {
		subjects.Set(t.Subject, struct{}{})
		objects[t.Object] = struct{}{}
	}

	for p := subjects.Oldest(); p != nil; p = p.Next() {
		if _, referenced := objects[p.Key]; referenced {
			other = append(other, p.Key)
		} else {
			exclusive = append(exclusive, p.Key)
		}
	}
	return exclusive, other
}

// propertyGroup is one predicate of a subject together with its distinct
// values in first-seen order.
type propertyGroup struct {
	predicate rdf.IRI
	values    []rdf.Term
}

// groupProperties collects the triples of subject s and groups their
// objects by predicate. Duplicate values under one predicate collapse.
// Every returned group has at least one value.
func groupProperties(g rdf.Graph, s rdf.Subject) []propertyGroup {
	byPredicate := orderedmap.New[rdf.IRI, *orderedmap.OrderedMap[rdf.Term, struct{}]]()

	for t := range g.Filter(s, "", nil) {
		values, ok := byPredicate.Get(t.Predicate)
		if !ok {
			values = orderedmap.New[rdf.Term, struct{}]()
			byPredicate.Set(t.Predicate, values)
		}
		values.Set(t.Object, struct{}{})
	}

	groups := make([]propertyGroup, 0, byPredicate.Len())
	for p := byPredicate.Oldest(); p != nil; p = p.Next() {
		group := propertyGroup{predicate: p.Key, values: make([]rdf.Term, 0, p.Value.Len())}
		for v := p.Value.Oldest(); v != nil; v = v.Next() {
			group.values = append(group.values, v.Key)
		}
		groups = append(groups, group)
	}
	return groups
}
