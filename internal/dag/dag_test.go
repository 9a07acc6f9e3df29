package dag

import (
	"testing"

	"github.com/stretchr/testify/require"

	relflowerrors "github.com/marachen/relflow/pkg/errors"
)

type fakeNode struct {
	name     string
	deps     []Node
	visited  bool
	refcount int
}

func (n *fakeNode) Name() string           { return n.name }
func (n *fakeNode) Dependencies() []Node   { return n.deps }
func (n *fakeNode) Visited() bool          { return n.visited }
func (n *fakeNode) SetVisited(v bool)      { n.visited = v }
func (n *fakeNode) SetRefcount(c int)      { n.refcount = c }

func TestPlanLinearChainHasZeroRefcounts(t *testing.T) {
	t.Parallel()

	c := &fakeNode{name: "C"}
	b := &fakeNode{name: "B", deps: []Node{c}}
	a := &fakeNode{name: "A", deps: []Node{b}}

	seq, err := Plan(a)
	require.NoError(t, err)
	require.Equal(t, []Node{a, b, c}, seq)
	require.Equal(t, 0, a.refcount)
	require.Equal(t, 0, b.refcount)
	require.Equal(t, 0, c.refcount)
	require.False(t, a.visited)
	require.False(t, b.visited)
	require.False(t, c.visited)
}

func TestPlanSharedDependencyAcrossTwoRootsGetsRefcountOne(t *testing.T) {
	t.Parallel()

	a := &fakeNode{name: "A"}
	b := &fakeNode{name: "B", deps: []Node{a}}
	c := &fakeNode{name: "C", deps: []Node{a}}

	seq, err := Plan(b, c)
	require.NoError(t, err)
	require.Equal(t, []Node{b, a, c, a}, seq)
	require.Equal(t, 1, a.refcount)
	require.Equal(t, 0, b.refcount)
	require.Equal(t, 0, c.refcount)
}

func TestPlanDetectsCycle(t *testing.T) {
	t.Parallel()

	a := &fakeNode{name: "A"}
	b := &fakeNode{name: "B", deps: []Node{a}}
	a.deps = []Node{b}

	_, err := Plan(a)
	require.Error(t, err)
	var cyclic *relflowerrors.CyclicDependencyError
	require.ErrorAs(t, err, &cyclic)
}

func TestPlanSelfReferenceIsCyclic(t *testing.T) {
	t.Parallel()

	a := &fakeNode{name: "A"}
	a.deps = []Node{a}

	_, err := Plan(a)
	require.Error(t, err)
	var cyclic *relflowerrors.CyclicDependencyError
	require.ErrorAs(t, err, &cyclic)
}

func TestPlanDiamondDependencyRefcount(t *testing.T) {
	t.Parallel()

	d := &fakeNode{name: "D"}
	b := &fakeNode{name: "B", deps: []Node{d}}
	c := &fakeNode{name: "C", deps: []Node{d}}
	a := &fakeNode{name: "A", deps: []Node{b, c}}

	seq, err := Plan(a)
	require.NoError(t, err)
	require.Equal(t, []Node{a, b, d, c, d}, seq)
	require.Equal(t, 1, d.refcount)
}
