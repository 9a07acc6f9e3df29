package pipeline

import (
	"fmt"

	relflowerrors "github.com/marachen/relflow/pkg/errors"
	"github.com/marachen/relflow/pkg/record"
)

// MapperFunc transforms one input record into zero or more output records.
// Output order within a single call is preserved.
type MapperFunc func(record.Record) ([]record.Record, error)

// FolderFunc combines one input record into the running accumulator,
// returning the new accumulator.
type FolderFunc func(rec, accumulator record.Record) (record.Record, error)

// ReducerFunc consumes one contiguous key-group and yields zero or more
// output records for it.
type ReducerFunc func(group []record.Record) ([]record.Record, error)

// JoinStrategy selects how unmatched rows on either side of a join are
// handled.
type JoinStrategy uint8

const (
	JoinInner JoinStrategy = iota
	JoinLeft
	JoinRight
	JoinOuter
)

// String renders a JoinStrategy for diagnostics and scenario config.
func (s JoinStrategy) String() string {
	switch s {
	case JoinInner:
		return "inner"
	case JoinLeft:
		return "left"
	case JoinRight:
		return "right"
	case JoinOuter:
		return "outer"
	default:
		return "unknown"
	}
}

// ParseJoinStrategy parses the four supported strategy names.
func ParseJoinStrategy(s string) (JoinStrategy, error) {
	switch s {
	case "inner":
		return JoinInner, nil
	case "left":
		return JoinLeft, nil
	case "right":
		return JoinRight, nil
	case "outer":
		return JoinOuter, nil
	default:
		return 0, relflowerrors.NewUnknownJoinStrategyError(s)
	}
}

type operationKind uint8

const (
	opMap operationKind = iota
	opSort
	opFold
	opReduce
	opJoin
)

// joinSpec describes a join operation's parameters.
type joinSpec struct {
	other    *Pipeline
	keys     []string
	strategy JoinStrategy
}

// operation is a tagged-variant operator descriptor: Map(fn), Sort(keys),
// Fold(fn, initial), Reduce(fn, keys), Join(other, keys, strategy).
type operation struct {
	kind operationKind

	mapper  MapperFunc
	keys    []string
	folder  FolderFunc
	initial record.Record
	reducer ReducerFunc
	join    *joinSpec
}

func (o operation) String() string {
	switch o.kind {
	case opMap:
		return "map"
	case opSort:
		return fmt.Sprintf("sort(%v)", o.keys)
	case opFold:
		return "fold"
	case opReduce:
		return fmt.Sprintf("reduce(%v)", o.keys)
	case opJoin:
		return fmt.Sprintf("join(%s,%v,%s)", o.join.other.name, o.join.keys, o.join.strategy)
	default:
		return "unknown"
	}
}
