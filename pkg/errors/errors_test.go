package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlreadyFinalizedErrorMentionsPipeline(t *testing.T) {
	t.Parallel()

	err := NewAlreadyFinalizedError("word_count")

	var target *AlreadyFinalizedError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "word_count", target.Pipeline)
	require.Contains(t, err.Error(), "word_count")
}

func TestSourceParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewSourceParseError("input.jsonl", 12, underlying)

	var target *SourceParseError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "input.jsonl", target.Path)
	require.Equal(t, 12, target.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "input.jsonl")
}

func TestMissingFieldErrorIncludesOpAndField(t *testing.T) {
	t.Parallel()

	err := NewMissingFieldError("sort", "doc_id")

	var target *MissingFieldError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "sort", target.Op)
	require.Equal(t, "doc_id", target.Field)
	require.Contains(t, err.Error(), "doc_id")
}

func TestUnknownJoinStrategyError(t *testing.T) {
	t.Parallel()

	err := NewUnknownJoinStrategyError("cross")

	var target *UnknownJoinStrategyError
	require.ErrorAs(t, err, &target)
	require.Contains(t, err.Error(), "cross")
}

func TestCyclicDependencyErrorIncludesPath(t *testing.T) {
	t.Parallel()

	err := NewCyclicDependencyError([]string{"a", "b", "a"})

	var target *CyclicDependencyError
	require.ErrorAs(t, err, &target)
	require.Equal(t, []string{"a", "b", "a"}, target.Path)
}

func TestNotExecutedError(t *testing.T) {
	t.Parallel()

	err := NewNotExecutedError("joined")

	var target *NotExecutedError
	require.ErrorAs(t, err, &target)
	require.Contains(t, err.Error(), "joined")
}

func TestSourceMissingAndRunBeforeFinalize(t *testing.T) {
	t.Parallel()

	var sm *SourceMissingError
	require.ErrorAs(t, NewSourceMissingError("p"), &sm)

	var rbf *RunBeforeFinalizeError
	require.ErrorAs(t, NewRunBeforeFinalizeError("p"), &rbf)
}
