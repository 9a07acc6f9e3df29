// Package dag implements the graph planner: a depth-first traversal of a
// pipeline's dependency graph that produces a linear visit sequence and, for
// every node in it, a reference count equal to the number of times that
// node is consumed again after its first appearance.
package dag

import (
	relflowerrors "github.com/marachen/relflow/pkg/errors"
)

// Node is the planning-time view of a pipeline: its effective dependency
// list (join inputs, plus its implicit source dependency once resolved) and
// the per-pass bookkeeping the planner needs. Identity is by reference.
type Node interface {
	// Name identifies the node for diagnostics (cycle-path reporting).
	Name() string
	// Dependencies returns the node's dependency list in declaration
	// order, with the node's source dependency (if the source is itself
	// a node) prepended exactly once.
	Dependencies() []Node
	// Visited reports whether this node was already marked during the
	// current traversal.
	Visited() bool
	// SetVisited marks or clears the node's visited flag.
	SetVisited(bool)
	// SetRefcount records the number of later occurrences of this node
	// in the visit sequence, computed once at its first occurrence.
	SetRefcount(int)
}

// Plan traverses the dependency graph rooted at each of roots, in order,
// sharing one visit sequence and one visited/on-stack state across all of
// them. This lets several pipelines that share a dependency be planned
// together so the shared dependency is correctly materialized once instead
// of being re-evaluated per root (see Plan with a single root for the
// simpler, independent case).
//
// After traversal, Plan clears every visited node's flag so a later replan
// of the same subgraph starts clean, and assigns each node's refcount at
// its first occurrence in the sequence to the count of its later
// occurrences.
func Plan(roots ...Node) ([]Node, error) {
	var seq []Node
	onStack := make(map[Node]bool)
	var path []string

	var visit func(n Node) error
	visit = func(n Node) error {
		if onStack[n] {
			return relflowerrors.NewCyclicDependencyError(append(path, n.Name()))
		}

		seq = append(seq, n)
		if n.Visited() {
			return nil
		}

		n.SetVisited(true)
		onStack[n] = true
		path = append(path, n.Name())
		for _, dep := range n.Dependencies() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		onStack[n] = false
		return nil
	}

	for _, root := range roots {
		if err := visit(root); err != nil {
			clearVisited(seq)
			return nil, err
		}
	}

	clearVisited(seq)
	assignRefcounts(seq)
	return seq, nil
}

func clearVisited(seq []Node) {
	for _, n := range seq {
		n.SetVisited(false)
	}
}

// assignRefcounts sets, for each node at its first occurrence in seq, the
// number of times it occurs again later in seq. The earliest variant of
// this algorithm excluded the final sequence position from consideration,
// which under-counts shared dependencies planned across multiple roots;
// every position is considered here.
func assignRefcounts(seq []Node) {
	assigned := make(map[Node]bool, len(seq))
	for i, n := range seq {
		if assigned[n] {
			continue
		}
		assigned[n] = true

		count := 0
		for _, later := range seq[i+1:] {
			if later == n {
				count++
			}
		}
		n.SetRefcount(count)
	}
}
