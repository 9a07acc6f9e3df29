// Package errors defines the typed error kinds produced by the graph
// builder, planner, and streaming executor. Each kind is its own struct type,
// matchable with errors.As; SourceParseError also wraps its underlying
// decode error, reachable through errors.Is / errors.Unwrap.
package errors

import "fmt"

// AlreadyFinalizedError is returned when an operation is appended to, or
// finalize is called a second time on, a pipeline that is already finalized.
type AlreadyFinalizedError struct {
	Pipeline string
}

// NewAlreadyFinalizedError constructs an AlreadyFinalizedError.
func NewAlreadyFinalizedError(pipeline string) error {
	return &AlreadyFinalizedError{Pipeline: pipeline}
}

func (e *AlreadyFinalizedError) Error() string {
	if e == nil {
		return ""
	}
	if e.Pipeline != "" {
		return fmt.Sprintf("pipeline %q is already finalized", e.Pipeline)
	}
	return "pipeline is already finalized"
}

// RunBeforeFinalizeError is returned when a non-finalized pipeline is run.
type RunBeforeFinalizeError struct {
	Pipeline string
}

// NewRunBeforeFinalizeError constructs a RunBeforeFinalizeError.
func NewRunBeforeFinalizeError(pipeline string) error {
	return &RunBeforeFinalizeError{Pipeline: pipeline}
}

func (e *RunBeforeFinalizeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Pipeline != "" {
		return fmt.Sprintf("pipeline %q run before finalize", e.Pipeline)
	}
	return "pipeline run before finalize"
}

// SourceMissingError is returned when a pipeline is executed without a source.
type SourceMissingError struct {
	Pipeline string
}

// NewSourceMissingError constructs a SourceMissingError.
func NewSourceMissingError(pipeline string) error {
	return &SourceMissingError{Pipeline: pipeline}
}

func (e *SourceMissingError) Error() string {
	if e == nil {
		return ""
	}
	if e.Pipeline != "" {
		return fmt.Sprintf("pipeline %q has no source", e.Pipeline)
	}
	return "pipeline has no source"
}

// SourceParseError is returned when an input line cannot be decoded into a record.
type SourceParseError struct {
	Path string
	Line int
	Err  error
}

// NewSourceParseError constructs a SourceParseError.
func NewSourceParseError(path string, line int, err error) error {
	return &SourceParseError{Path: path, Line: line, Err: err}
}

func (e *SourceParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("source parse error: %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("source parse error: line %d: %v", e.Line, e.Err)
}

// Unwrap exposes the underlying decode error.
func (e *SourceParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// MissingFieldError is returned when a sort/reduce/join key is absent from a record.
type MissingFieldError struct {
	Op    string
	Field string
}

// NewMissingFieldError constructs a MissingFieldError.
func NewMissingFieldError(op, field string) error {
	return &MissingFieldError{Op: op, Field: field}
}

func (e *MissingFieldError) Error() string {
	if e == nil {
		return ""
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: record missing key field %q", e.Op, e.Field)
	}
	return fmt.Sprintf("record missing key field %q", e.Field)
}

// UnknownJoinStrategyError is returned when a join strategy is not recognized.
type UnknownJoinStrategyError struct {
	Strategy string
}

// NewUnknownJoinStrategyError constructs an UnknownJoinStrategyError.
func NewUnknownJoinStrategyError(strategy string) error {
	return &UnknownJoinStrategyError{Strategy: strategy}
}

func (e *UnknownJoinStrategyError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("unknown join strategy %q", e.Strategy)
}

// CyclicDependencyError is returned when the planner detects a dependency cycle.
type CyclicDependencyError struct {
	Path []string
}

// NewCyclicDependencyError constructs a CyclicDependencyError.
func NewCyclicDependencyError(path []string) error {
	return &CyclicDependencyError{Path: append([]string(nil), path...)}
}

func (e *CyclicDependencyError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Path) == 0 {
		return "cyclic dependency detected"
	}
	return fmt.Sprintf("cyclic dependency detected: %v", e.Path)
}

// NotExecutedError is returned when save_output is requested before a
// successful run.
type NotExecutedError struct {
	Pipeline string
}

// NewNotExecutedError constructs a NotExecutedError.
func NewNotExecutedError(pipeline string) error {
	return &NotExecutedError{Pipeline: pipeline}
}

func (e *NotExecutedError) Error() string {
	if e == nil {
		return ""
	}
	if e.Pipeline != "" {
		return fmt.Sprintf("pipeline %q has not been executed", e.Pipeline)
	}
	return "pipeline has not been executed"
}
