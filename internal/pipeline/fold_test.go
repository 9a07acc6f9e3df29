package pipeline

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marachen/relflow/pkg/record"
)

func countingFolder(_ record.Record, acc record.Record) (record.Record, error) {
	v, _ := acc.Get("count")
	n, _ := v.Int()
	return acc.With("count", record.Int(n+1)), nil
}

func TestFoldStreamCountsToOneOutput(t *testing.T) {
	t.Parallel()

	in := newSliceStream([]record.Record{
		rec(t, map[string]interface{}{"x": int64(1)}),
		rec(t, map[string]interface{}{"x": int64(2)}),
		rec(t, map[string]interface{}{"x": int64(3)}),
	})

	s := newFoldStream(in, countingFolder, rec(t, map[string]interface{}{"count": int64(0)}))
	out := drainAll(t, s)
	require.Len(t, out, 1)

	v, _ := out[0].Get("count")
	n, _ := v.Int()
	require.Equal(t, int64(3), n)

	_, err := s.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestFoldStreamOnEmptyInputEmitsInitial(t *testing.T) {
	t.Parallel()

	initial := rec(t, map[string]interface{}{"count": int64(0)})
	s := newFoldStream(newSliceStream(nil), countingFolder, initial)
	out := drainAll(t, s)
	require.Equal(t, []record.Record{initial}, out)
}

func TestFoldStreamPropagatesFolderError(t *testing.T) {
	t.Parallel()

	boom := func(record.Record, record.Record) (record.Record, error) {
		return nil, errBoom
	}
	in := newSliceStream([]record.Record{rec(t, map[string]interface{}{"x": int64(1)})})
	s := newFoldStream(in, boom, rec(t, map[string]interface{}{}))
	_, err := s.Next()
	require.ErrorIs(t, err, errBoom)
}
