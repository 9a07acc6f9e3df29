// Package pipeline implements the graph builder and streaming executor: a
// Pipeline accumulates map/sort/fold/reduce/join operations over a record
// source, and evaluates them lazily and, where sharing requires it,
// cooperatively with other pipelines in the same dependency graph.
package pipeline

import (
	"github.com/marachen/relflow/internal/dag"
	"github.com/marachen/relflow/internal/logger"
	relflowerrors "github.com/marachen/relflow/pkg/errors"
	"github.com/marachen/relflow/pkg/record"
)

// Pipeline is an ordered list of operations plus a source, a transient
// materialized-result cache, a reference count, and the flags that track
// its lifecycle. A pipeline's identity is by reference.
type Pipeline struct {
	name string
	log  *logger.Logger

	ops    []operation
	source *Source
	deps   []*Pipeline

	finalized bool
	planned   bool
	state     State
	observer  func(name string, s State)

	visited  bool
	refcount int

	hasMaterialized bool
	materialized    []record.Record

	lastResult []record.Record
}

// New creates an empty, unfinalized pipeline identified by name (used in
// diagnostics and cycle-path error messages).
func New(name string) *Pipeline {
	return &Pipeline{name: name, state: StateBuilding, log: logger.Nop()}
}

// WithLogger attaches a logger used for the planner/executor's diagnostic
// trace. A nil-safe no-op logger is used if this is never called.
func (p *Pipeline) WithLogger(l *logger.Logger) *Pipeline {
	if l != nil {
		p.log = l
	}
	return p
}

// WithObserver registers a callback invoked every time the pipeline's
// lifecycle state changes. Purely a diagnostic hook for a viewer like
// internal/progress; it has no influence on planning or execution.
func (p *Pipeline) WithObserver(fn func(name string, s State)) *Pipeline {
	p.observer = fn
	return p
}

// Name returns the pipeline's diagnostic name.
func (p *Pipeline) Name() string { return p.name }

// State reports the pipeline's current lifecycle state.
func (p *Pipeline) State() State { return p.state }

func (p *Pipeline) setState(s State) {
	p.state = s
	if p.observer != nil {
		p.observer(p.name, s)
	}
}

// Map appends a map operation. Fails with AlreadyFinalized once finalized.
func (p *Pipeline) Map(fn MapperFunc) (*Pipeline, error) {
	if err := p.checkMutable(); err != nil {
		return nil, err
	}
	p.ops = append(p.ops, operation{kind: opMap, mapper: fn})
	return p, nil
}

// Sort appends a sort operation keyed on keys, in order.
func (p *Pipeline) Sort(keys []string) (*Pipeline, error) {
	if err := p.checkMutable(); err != nil {
		return nil, err
	}
	p.ops = append(p.ops, operation{kind: opSort, keys: append([]string(nil), keys...)})
	return p, nil
}

// Fold appends a fold operation with the given initial accumulator.
func (p *Pipeline) Fold(fn FolderFunc, initial record.Record) (*Pipeline, error) {
	if err := p.checkMutable(); err != nil {
		return nil, err
	}
	p.ops = append(p.ops, operation{kind: opFold, folder: fn, initial: initial})
	return p, nil
}

// Reduce appends a reduce operation over pre-grouped input.
func (p *Pipeline) Reduce(fn ReducerFunc, keys []string) (*Pipeline, error) {
	if err := p.checkMutable(); err != nil {
		return nil, err
	}
	p.ops = append(p.ops, operation{kind: opReduce, reducer: fn, keys: append([]string(nil), keys...)})
	return p, nil
}

// Join appends a join operation against other, registering other as a
// dependency (declaration order preserved, duplicates allowed).
func (p *Pipeline) Join(other *Pipeline, keys []string, strategy JoinStrategy) (*Pipeline, error) {
	if err := p.checkMutable(); err != nil {
		return nil, err
	}
	p.ops = append(p.ops, operation{kind: opJoin, join: &joinSpec{
		other:    other,
		keys:     append([]string(nil), keys...),
		strategy: strategy,
	}})
	p.deps = append(p.deps, other)
	return p, nil
}

// Finalize freezes the operation list. Calling it twice fails with
// AlreadyFinalized.
func (p *Pipeline) Finalize() error {
	if p.finalized {
		return relflowerrors.NewAlreadyFinalizedError(p.name)
	}
	p.finalized = true
	p.setState(StateFinalized)
	return nil
}

// SetSource assigns or replaces the pipeline's source. Replacing the source
// invalidates any prior plan, since the dependency graph may have changed.
func (p *Pipeline) SetSource(src Source) {
	p.source = &src
	p.planned = false
}

func (p *Pipeline) checkMutable() error {
	if p.finalized {
		return relflowerrors.NewAlreadyFinalizedError(p.name)
	}
	return nil
}

// --- dag.Node ---

func (p *Pipeline) Dependencies() []dag.Node {
	eff := p.effectiveDependencies()
	out := make([]dag.Node, len(eff))
	for i, d := range eff {
		out[i] = d
	}
	return out
}

func (p *Pipeline) Visited() bool      { return p.visited }
func (p *Pipeline) SetVisited(v bool)  { p.visited = v }
func (p *Pipeline) SetRefcount(n int)  { p.refcount = n }

// effectiveDependencies prepends the source pipeline, if any, ahead of the
// join dependency list, without duplicating it if it is already first.
// Computed fresh on each call rather than mutating deps, so it never
// accumulates duplicates across repeated planning passes.
func (p *Pipeline) effectiveDependencies() []*Pipeline {
	if p.source == nil || p.source.kind != sourcePipeline {
		return p.deps
	}
	src := p.source.pipeline
	if len(p.deps) > 0 && p.deps[0] == src {
		return p.deps
	}
	out := make([]*Pipeline, 0, len(p.deps)+1)
	out = append(out, src)
	out = append(out, p.deps...)
	return out
}

// Plan plans one or more pipelines together, sharing a single visit
// sequence so dependencies shared across roots are recognized and
// materialized at most once. Call it once across every pipeline you intend
// to run in the same session before calling Run/Iter on any of them; a
// pipeline not yet planned plans itself (as the sole root) the first time
// it is run.
func Plan(roots ...*Pipeline) error {
	nodes := make([]dag.Node, len(roots))
	for i, r := range roots {
		nodes[i] = r
	}
	seq, err := dag.Plan(nodes...)
	if err != nil {
		return err
	}
	for _, n := range seq {
		if pl, ok := n.(*Pipeline); ok {
			pl.planned = true
		}
	}
	return nil
}

func (p *Pipeline) ensurePlanned() error {
	if p.planned {
		return nil
	}
	return Plan(p)
}
