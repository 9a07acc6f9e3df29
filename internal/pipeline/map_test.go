package pipeline

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marachen/relflow/pkg/record"
)

func rec(t *testing.T, fields map[string]interface{}) record.Record {
	t.Helper()
	r, err := record.New(fields)
	require.NoError(t, err)
	return r
}

func drainAll(t *testing.T, s Stream) []record.Record {
	t.Helper()
	out, err := drain(s)
	require.NoError(t, err)
	return out
}

func TestMapStreamPreservesOrderAndExpandsEmissions(t *testing.T) {
	t.Parallel()

	in := newSliceStream([]record.Record{
		rec(t, map[string]interface{}{"n": int64(1)}),
		rec(t, map[string]interface{}{"n": int64(2)}),
	})

	double := func(r record.Record) ([]record.Record, error) {
		v, _ := r.Get("n")
		n, _ := v.Int()
		return []record.Record{
			rec(t, map[string]interface{}{"n": n, "copy": int64(0)}),
			rec(t, map[string]interface{}{"n": n, "copy": int64(1)}),
		}, nil
	}

	s := newMapStream(in, double)
	out := drainAll(t, s)
	require.Len(t, out, 4)

	var seq []int64
	for _, r := range out {
		n, _ := r.Get("n")
		v, _ := n.Int()
		seq = append(seq, v)
	}
	require.Equal(t, []int64{1, 1, 2, 2}, seq)
}

func TestMapStreamZeroEmissionsYieldsEmptyOutput(t *testing.T) {
	t.Parallel()

	in := newSliceStream([]record.Record{rec(t, map[string]interface{}{"n": int64(1)})})
	drop := func(record.Record) ([]record.Record, error) { return nil, nil }

	s := newMapStream(in, drop)
	_, err := s.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestMapStreamOnEmptyInputIsEmpty(t *testing.T) {
	t.Parallel()

	s := newMapStream(newSliceStream(nil), func(r record.Record) ([]record.Record, error) { return []record.Record{r}, nil })
	_, err := s.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestMapStreamIdentityMapperIsNoOp(t *testing.T) {
	t.Parallel()

	input := []record.Record{
		rec(t, map[string]interface{}{"a": int64(1)}),
		rec(t, map[string]interface{}{"a": int64(2)}),
	}
	s := newMapStream(newSliceStream(input), func(r record.Record) ([]record.Record, error) { return []record.Record{r}, nil })
	require.Equal(t, input, drainAll(t, s))
}
