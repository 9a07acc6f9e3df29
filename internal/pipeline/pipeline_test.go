package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	relflowerrors "github.com/marachen/relflow/pkg/errors"
	"github.com/marachen/relflow/pkg/record"
)

func identityMapper(r record.Record) ([]record.Record, error) { return []record.Record{r}, nil }

func TestMapRejectsAfterFinalize(t *testing.T) {
	t.Parallel()

	p := New("p")
	require.NoError(t, p.Finalize())

	_, err := p.Map(identityMapper)
	require.Error(t, err)
	var af *relflowerrors.AlreadyFinalizedError
	require.ErrorAs(t, err, &af)
}

func TestFinalizeTwiceFails(t *testing.T) {
	t.Parallel()

	p := New("p")
	require.NoError(t, p.Finalize())

	err := p.Finalize()
	require.Error(t, err)
	var af *relflowerrors.AlreadyFinalizedError
	require.ErrorAs(t, err, &af)
}

func TestRunBeforeFinalizeFails(t *testing.T) {
	t.Parallel()

	p := New("p")
	p.SetSource(SliceSource(nil))

	_, err := p.Run()
	require.Error(t, err)
	var rbf *relflowerrors.RunBeforeFinalizeError
	require.ErrorAs(t, err, &rbf)
}

func TestRunWithoutSourceFails(t *testing.T) {
	t.Parallel()

	p := New("p")
	require.NoError(t, p.Finalize())

	_, err := p.Run()
	require.Error(t, err)
	var sm *relflowerrors.SourceMissingError
	require.ErrorAs(t, err, &sm)
}

func TestSaveOutputBeforeRunFails(t *testing.T) {
	t.Parallel()

	p := New("p")
	require.NoError(t, p.Finalize())

	err := p.SaveOutput("/tmp/does-not-matter.jsonl")
	require.Error(t, err)
	var ne *relflowerrors.NotExecutedError
	require.ErrorAs(t, err, &ne)
}

func TestRunIsIdempotentInValue(t *testing.T) {
	t.Parallel()

	p := New("p")
	p.SetSource(SliceSource([]record.Record{rec(t, map[string]interface{}{"a": int64(1)})}))
	require.NoError(t, p.Finalize())

	first, err := p.Run()
	require.NoError(t, err)
	second, err := p.Run()
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestJoinRegistersDependencyAndUnknownStrategyErrors(t *testing.T) {
	t.Parallel()

	other := New("other")
	p := New("p")
	_, err := p.Join(other, []string{"id"}, JoinInner)
	require.NoError(t, err)
	require.Equal(t, []*Pipeline{other}, p.deps)

	_, err = ParseJoinStrategy("sideways")
	require.Error(t, err)
	var uj *relflowerrors.UnknownJoinStrategyError
	require.ErrorAs(t, err, &uj)
}

func TestStateTransitionsThroughExecution(t *testing.T) {
	t.Parallel()

	p := New("p")
	require.Equal(t, StateBuilding, p.State())
	p.SetSource(SliceSource([]record.Record{rec(t, map[string]interface{}{"a": int64(1)})}))
	require.NoError(t, p.Finalize())
	require.Equal(t, StateFinalized, p.State())

	_, err := p.Run()
	require.NoError(t, err)
}
