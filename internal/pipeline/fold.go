package pipeline

import (
	"io"

	"github.com/marachen/relflow/pkg/record"
)

// foldStream consumes the entire upstream, replacing its accumulator with
// fn(record, accumulator) each step, and emits exactly one output record:
// the final accumulator. An empty upstream still emits the initial
// accumulator unchanged.
type foldStream struct {
	upstream Stream
	fn       FolderFunc
	acc      record.Record

	done    bool
	emitted bool
	foldErr error
}

func newFoldStream(upstream Stream, fn FolderFunc, initial record.Record) *foldStream {
	return &foldStream{upstream: upstream, fn: fn, acc: initial}
}

func (f *foldStream) Close() error { return f.upstream.Close() }

func (f *foldStream) Next() (record.Record, error) {
	if f.emitted {
		return nil, io.EOF
	}
	if f.foldErr != nil {
		return nil, f.foldErr
	}
	if !f.done {
		for {
			r, err := f.upstream.Next()
			if err == io.EOF {
				f.done = true
				break
			}
			if err != nil {
				f.foldErr = err
				return nil, err
			}
			acc, err := f.fn(r, f.acc)
			if err != nil {
				f.foldErr = err
				return nil, err
			}
			f.acc = acc
		}
	}
	f.emitted = true
	return f.acc, nil
}
