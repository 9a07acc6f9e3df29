package pipeline

import (
	"io"

	"github.com/marachen/relflow/pkg/record"
)

// mapStream applies a MapperFunc to each upstream record, forwarding its
// output records one at a time before pulling the next input. Never
// blocks: it buffers at most one mapper call's output.
type mapStream struct {
	upstream Stream
	fn       MapperFunc

	pending []record.Record
	pos     int
	done    bool
}

func newMapStream(upstream Stream, fn MapperFunc) *mapStream {
	return &mapStream{upstream: upstream, fn: fn}
}

func (m *mapStream) Next() (record.Record, error) {
	for {
		if m.pos < len(m.pending) {
			r := m.pending[m.pos]
			m.pos++
			return r, nil
		}
		if m.done {
			return nil, io.EOF
		}

		in, err := m.upstream.Next()
		if err == io.EOF {
			m.done = true
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}

		out, err := m.fn(in)
		if err != nil {
			return nil, err
		}
		m.pending = out
		m.pos = 0
	}
}

func (m *mapStream) Close() error { return m.upstream.Close() }
