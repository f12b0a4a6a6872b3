package rdf

import "testing"

func TestLabelTable(t *testing.T) {
	labels := NewLabelTable("_:")
	b0, b1 := NewBlankNode(), NewBlankNode()

	steps := []struct {
		node Subject
		want string
	}{
		{alice, string(alice)},
		{b1, "_:0"},
		{b0, "_:1"},
		{b1, "_:0"},
		{bob, string(bob)},
		{b0, "_:1"},
	}

	for i, s := range steps {
		if got := labels.Label(s.node); got != s.want {
			t.Errorf("step %d: Label() = %q, want %q", i, got, s.want)
		}
	}
	if labels.Len() != 2 {
		t.Errorf("Len() = %d, want 2", labels.Len())
	}
}

func TestLabelTablesAreIndependent(t *testing.T) {
	b := NewBlankNode()
	other := NewBlankNode()

	first := NewLabelTable("_:")
	first.Label(other)
	if got := first.Label(b); got != "_:1" {
		t.Errorf("first table Label() = %q, want _:1", got)
	}

	second := NewLabelTable("_:")
	if got := second.Label(b); got != "_:0" {
		t.Errorf("fresh table Label() = %q, want _:0", got)
	}
}
