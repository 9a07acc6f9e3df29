package pipeline

import (
	"github.com/marachen/relflow/internal/recordio"
	relflowerrors "github.com/marachen/relflow/pkg/errors"
	"github.com/marachen/relflow/pkg/record"
)

// Stream returns a pull iterator over the pipeline's output, applying the
// materialization rule: a pipeline with outstanding later consumers is
// drained once and cached; one with none left streams directly.
func (p *Pipeline) Stream() (Stream, error) {
	if !p.finalized {
		return nil, relflowerrors.NewRunBeforeFinalizeError(p.name)
	}
	if p.source == nil {
		return nil, relflowerrors.NewSourceMissingError(p.name)
	}
	if err := p.ensurePlanned(); err != nil {
		return nil, err
	}
	return p.pull()
}

func (p *Pipeline) pull() (Stream, error) {
	if p.hasMaterialized {
		out := p.materialized
		p.refcount--
		if p.refcount <= 0 {
			p.hasMaterialized = false
			p.materialized = nil
			p.setState(StateExhausted)
		}
		p.log.WithFields(map[string]interface{}{"pipeline": p.name}).Debug("serving materialized result")
		return newSliceStream(out), nil
	}

	p.setState(StateExecuting)
	chain, err := p.buildChain()
	if err != nil {
		return nil, err
	}

	if p.refcount == 0 {
		return chain, nil
	}

	recs, err := drain(chain)
	if err != nil {
		return nil, err
	}
	p.materialized = recs
	p.hasMaterialized = true
	p.setState(StateMaterialized)
	p.log.WithFields(map[string]interface{}{"pipeline": p.name, "records": len(recs)}).Debug("materialized shared result")
	return newSliceStream(recs), nil
}

// buildChain folds the operation list over the source stream, each operator
// wrapping the stream produced by the one before it.
func (p *Pipeline) buildChain() (Stream, error) {
	s, err := p.source.stream()
	if err != nil {
		return nil, err
	}
	for _, op := range p.ops {
		s, err = applyOperation(s, op)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func applyOperation(upstream Stream, op operation) (Stream, error) {
	switch op.kind {
	case opMap:
		return newMapStream(upstream, op.mapper), nil
	case opSort:
		return newSortStream(upstream, op.keys), nil
	case opFold:
		return newFoldStream(upstream, op.folder, op.initial), nil
	case opReduce:
		return newReduceStream(upstream, op.reducer, op.keys), nil
	case opJoin:
		return newJoinStream(upstream, op.join)
	default:
		return upstream, nil
	}
}

// Run executes the pipeline to completion and returns the full result
// vector. The result is cached for SaveOutput regardless of how the
// planner's refcount-driven materialization handled this evaluation.
func (p *Pipeline) Run() ([]record.Record, error) {
	s, err := p.Stream()
	if err != nil {
		return nil, err
	}
	defer s.Close()
	out, err := drain(s)
	if err != nil {
		return nil, err
	}
	p.lastResult = out
	if p.lastResult == nil {
		p.lastResult = []record.Record{}
	}
	return out, nil
}

// Iter returns a one-shot lazy stream over the pipeline's output. Unlike
// Run, the caller controls how much of it gets pulled — including none at
// all — and is responsible for calling the returned Stream's Close once
// done, whether or not it was drained to io.EOF. Close is safe to call on a
// stream that was never pulled from and safe to call more than once.
func (p *Pipeline) Iter() (Stream, error) {
	return p.Stream()
}

// SaveOutput writes the pipeline's most recent Run result to path as
// newline-delimited JSON. Fails with NotExecuted if Run has never
// succeeded.
func (p *Pipeline) SaveOutput(path string) error {
	if p.lastResult == nil {
		return relflowerrors.NewNotExecutedError(p.name)
	}
	return recordio.WriteFile(path, p.lastResult)
}
