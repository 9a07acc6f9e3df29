package pipeline

import (
	"github.com/marachen/relflow/internal/recordio"
	"github.com/marachen/relflow/pkg/record"
)

type sourceKind uint8

const (
	sourceFile sourceKind = iota
	sourceSlice
	sourcePipeline
)

// Source wraps one of the three accepted source kinds: a file path, an
// in-memory vector of records, or another pipeline.
type Source struct {
	kind     sourceKind
	path     string
	records  []record.Record
	pipeline *Pipeline
}

// FileSource builds a Source that reads newline-delimited JSON from path.
// The file is opened lazily on first pull.
func FileSource(path string) Source {
	return Source{kind: sourceFile, path: path}
}

// SliceSource builds a Source from an in-memory, finite vector of records.
func SliceSource(records []record.Record) Source {
	return Source{kind: sourceSlice, records: records}
}

// PipelineSource builds a Source that pulls from another pipeline's result.
// That pipeline becomes an implicit dependency, prepended to this
// pipeline's dependency list during planning.
func PipelineSource(p *Pipeline) Source {
	return Source{kind: sourcePipeline, pipeline: p}
}

func (s Source) stream() (Stream, error) {
	switch s.kind {
	case sourceFile:
		return recordio.NewFileReader(s.path), nil
	case sourceSlice:
		return newSliceStream(s.records), nil
	case sourcePipeline:
		return s.pipeline.Stream()
	default:
		return newSliceStream(nil), nil
	}
}
