package pipeline

import (
	"io"

	relflowerrors "github.com/marachen/relflow/pkg/errors"
	"github.com/marachen/relflow/pkg/record"
)

// reduceStream groups contiguous upstream records sharing the same key
// tuple and invokes the reducer once per group, including the final group
// at end of input. It assumes the upstream is already grouped (typically by
// a prior Sort on the same keys); a non-grouped upstream produces extra,
// fragmented groups without error, per spec.
type reduceStream struct {
	upstream Stream
	fn       ReducerFunc
	keys     []string

	pending      []record.Record
	pos          int
	upstreamDone bool
	currentKey   []record.Value
	haveKey      bool
	err          error
}

func newReduceStream(upstream Stream, fn ReducerFunc, keys []string) *reduceStream {
	return &reduceStream{upstream: upstream, fn: fn, keys: keys}
}

// Close closes whichever stream currently backs the reducer's upstream — the
// original source, or a prependStream left behind by a key-change pushback —
// since nextGroup reassigns r.upstream as it discovers group boundaries.
func (r *reduceStream) Close() error { return r.upstream.Close() }

func (r *reduceStream) Next() (record.Record, error) {
	for {
		if r.pos < len(r.pending) {
			out := r.pending[r.pos]
			r.pos++
			return out, nil
		}
		if r.err != nil {
			return nil, r.err
		}
		if r.upstreamDone {
			return nil, io.EOF
		}

		group, err := r.nextGroup()
		if err != nil {
			r.err = err
			return nil, err
		}
		if group == nil {
			return nil, io.EOF
		}

		out, err := r.fn(group)
		if err != nil {
			r.err = err
			return nil, err
		}
		r.pending = out
		r.pos = 0
	}
}

// nextGroup accumulates the next contiguous key-group, returning nil once
// the upstream is exhausted with no more groups to flush.
func (r *reduceStream) nextGroup() ([]record.Record, error) {
	var group []record.Record
	for {
		rec, err := r.upstream.Next()
		if err == io.EOF {
			r.upstreamDone = true
			if len(group) == 0 {
				return nil, nil
			}
			return group, nil
		}
		if err != nil {
			return nil, err
		}

		field, missing := record.FirstMissingKey(rec, r.keys)
		if missing {
			return nil, relflowerrors.NewMissingFieldError("reduce", field)
		}
		key, _ := record.Key(rec, r.keys)

		if !r.haveKey {
			r.haveKey = true
			r.currentKey = key
			group = append(group, rec)
			continue
		}

		if record.KeysEqual(r.currentKey, key) {
			group = append(group, rec)
			continue
		}

		// Key changed: this record starts the next group. Stash it by
		// re-wrapping the upstream so the next call to nextGroup starts
		// from it.
		r.upstream = &prependStream{first: rec, rest: r.upstream}
		r.currentKey = key
		return group, nil
	}
}

// prependStream re-inserts one already-pulled record ahead of the rest of
// a stream, used by reduceStream to push back the record that starts the
// next group after detecting a key change.
type prependStream struct {
	first record.Record
	used  bool
	rest  Stream
}

func (p *prependStream) Next() (record.Record, error) {
	if !p.used {
		p.used = true
		return p.first, nil
	}
	return p.rest.Next()
}

func (p *prependStream) Close() error { return p.rest.Close() }
