package pipeline

import (
	"io"

	"github.com/marachen/relflow/pkg/record"
)

// Stream is a pull-based, single-pass sequence of records. Next returns
// io.EOF once exhausted; callers must stop pulling after the first error.
// Close releases any resource held open by the stream's source (typically a
// file handle) and must be safe to call more than once and at any point in
// iteration, including before the stream is exhausted — a caller that stops
// pulling early (Iter's documented one-shot, possibly-partial use) is still
// required to call it.
type Stream interface {
	Next() (record.Record, error)
	Close() error
}

// sliceStream adapts an in-memory vector of records to Stream, used for
// in-memory sources and for iterating a pipeline's materialized result. It
// holds no resource, so Close is a no-op.
type sliceStream struct {
	records []record.Record
	pos     int
}

func newSliceStream(records []record.Record) *sliceStream {
	return &sliceStream{records: records}
}

func (s *sliceStream) Next() (record.Record, error) {
	if s.pos >= len(s.records) {
		return nil, io.EOF
	}
	r := s.records[s.pos]
	s.pos++
	return r, nil
}

func (s *sliceStream) Close() error { return nil }

// drain pulls every record from s into a vector.
func drain(s Stream) ([]record.Record, error) {
	var out []record.Record
	for {
		r, err := s.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
}
