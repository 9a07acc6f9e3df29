package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marachen/relflow/pkg/record"
)

func newFinalizedPipeline(t *testing.T, name string, records []record.Record) *Pipeline {
	t.Helper()
	p := New(name)
	p.SetSource(SliceSource(records))
	require.NoError(t, p.Finalize())
	return p
}

func TestJoinInner(t *testing.T) {
	t.Parallel()

	left := newFinalizedPipeline(t, "left", []record.Record{
		rec(t, map[string]interface{}{"id": int64(1), "name": "A"}),
		rec(t, map[string]interface{}{"id": int64(2), "name": "B"}),
	})
	right := newFinalizedPipeline(t, "right", []record.Record{
		rec(t, map[string]interface{}{"id": int64(2), "city": "X"}),
		rec(t, map[string]interface{}{"id": int64(3), "city": "Y"}),
	})

	leftRecs, err := left.Run()
	require.NoError(t, err)

	joined := New("joined")
	joined.SetSource(SliceSource(leftRecs))
	_, err = joined.Join(right, []string{"id"}, JoinInner)
	require.NoError(t, err)
	require.NoError(t, joined.Finalize())

	out, err := joined.Run()
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, int64(2), getInt(t, out[0], "id"))
	require.Equal(t, "B", getString(t, out[0], "name"))
	require.Equal(t, "X", getString(t, out[0], "city"))
}

func TestJoinLeft(t *testing.T) {
	t.Parallel()

	leftRecs := []record.Record{
		rec(t, map[string]interface{}{"id": int64(1), "name": "A"}),
		rec(t, map[string]interface{}{"id": int64(2), "name": "B"}),
	}
	right := newFinalizedPipeline(t, "right", []record.Record{
		rec(t, map[string]interface{}{"id": int64(2), "city": "X"}),
		rec(t, map[string]interface{}{"id": int64(3), "city": "Y"}),
	})

	p := New("leftjoin")
	p.SetSource(SliceSource(leftRecs))
	_, err := p.Join(right, []string{"id"}, JoinLeft)
	require.NoError(t, err)
	require.NoError(t, p.Finalize())

	out, err := p.Run()
	require.NoError(t, err)
	require.Len(t, out, 2)

	require.Equal(t, int64(2), getInt(t, out[0], "id"))
	require.Equal(t, "X", getString(t, out[0], "city"))

	require.Equal(t, int64(1), getInt(t, out[1], "id"))
	v, ok := out[1].Get("city")
	require.True(t, ok)
	require.True(t, v.IsNull())
}

func TestJoinOuter(t *testing.T) {
	t.Parallel()

	leftRecs := []record.Record{
		rec(t, map[string]interface{}{"id": int64(1), "name": "A"}),
		rec(t, map[string]interface{}{"id": int64(2), "name": "B"}),
	}
	right := newFinalizedPipeline(t, "right", []record.Record{
		rec(t, map[string]interface{}{"id": int64(2), "city": "X"}),
		rec(t, map[string]interface{}{"id": int64(3), "city": "Y"}),
	})

	p := New("outerjoin")
	p.SetSource(SliceSource(leftRecs))
	_, err := p.Join(right, []string{"id"}, JoinOuter)
	require.NoError(t, err)
	require.NoError(t, p.Finalize())

	out, err := p.Run()
	require.NoError(t, err)
	require.Len(t, out, 3)

	require.Equal(t, int64(2), getInt(t, out[0], "id"))
	require.Equal(t, int64(1), getInt(t, out[1], "id"))
	v, _ := out[1].Get("city")
	require.True(t, v.IsNull())

	require.Equal(t, int64(3), getInt(t, out[2], "id"))
	v2, _ := out[2].Get("name")
	require.True(t, v2.IsNull())
}

func TestJoinLeftWithEmptyRightPassesThroughUnchanged(t *testing.T) {
	t.Parallel()

	leftRecs := []record.Record{rec(t, map[string]interface{}{"id": int64(1), "name": "A"})}
	right := newFinalizedPipeline(t, "emptyright", nil)

	p := New("leftjoinempty")
	p.SetSource(SliceSource(leftRecs))
	_, err := p.Join(right, []string{"id"}, JoinLeft)
	require.NoError(t, err)
	require.NoError(t, p.Finalize())

	out, err := p.Run()
	require.NoError(t, err)
	require.Equal(t, leftRecs, out)
}

func getInt(t *testing.T, r record.Record, field string) int64 {
	t.Helper()
	v, ok := r.Get(field)
	require.True(t, ok)
	n, ok := v.Int()
	require.True(t, ok)
	return n
}

func getString(t *testing.T, r record.Record, field string) string {
	t.Helper()
	v, ok := r.Get(field)
	require.True(t, ok)
	s, ok := v.String()
	require.True(t, ok)
	return s
}
