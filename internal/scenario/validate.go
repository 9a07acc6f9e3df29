package scenario

import (
	"fmt"

	"github.com/marachen/relflow/internal/pipeline"
	"github.com/marachen/relflow/internal/registry"
)

// ValidateDocument runs struct-tag validation followed by the semantic
// checks struct tags cannot express: pipeline names are unique, every
// inter-pipeline reference (a source or a join's "with") points at a
// pipeline actually declared in the document, every named mapper/folder/
// reducer is registered, and every step carries the fields its type
// requires.
func ValidateDocument(doc *Document) error {
	if err := validatorInstance().Struct(doc); err != nil {
		return err
	}

	names := make(map[string]bool, len(doc.Pipelines))
	for _, p := range doc.Pipelines {
		if names[p.Name] {
			return fmt.Errorf("scenario: duplicate pipeline name %q", p.Name)
		}
		names[p.Name] = true
	}

	for _, p := range doc.Pipelines {
		if err := validateSource(p, names); err != nil {
			return err
		}
		for i, s := range p.Steps {
			if err := validateStep(p.Name, i, s, names); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateSource(p PipelineSpec, names map[string]bool) error {
	hasFile := p.Source.File != ""
	hasPipeline := p.Source.Pipeline != ""
	switch {
	case hasFile == hasPipeline:
		return fmt.Errorf("scenario: pipeline %q source must set exactly one of file or pipeline", p.Name)
	case hasPipeline && p.Source.Pipeline == p.Name:
		return fmt.Errorf("scenario: pipeline %q cannot source from itself", p.Name)
	case hasPipeline && !names[p.Source.Pipeline]:
		return fmt.Errorf("scenario: pipeline %q sources from undeclared pipeline %q", p.Name, p.Source.Pipeline)
	}
	return nil
}

func validateStep(pipelineName string, index int, s StepSpec, names map[string]bool) error {
	at := func(format string, args ...interface{}) error {
		return fmt.Errorf("scenario: pipeline %q step %d: "+format, append([]interface{}{pipelineName, index}, args...)...)
	}

	switch s.Type {
	case "map":
		if s.Mapper == "" {
			return at("map step requires mapper")
		}
		if _, err := registry.Mapper(s.Mapper); err != nil {
			return at("%v", err)
		}
	case "sort":
		if len(s.Keys) == 0 {
			return at("sort step requires keys")
		}
	case "fold":
		if s.Folder == "" {
			return at("fold step requires folder")
		}
		if _, err := registry.Folder(s.Folder); err != nil {
			return at("%v", err)
		}
	case "reduce":
		if s.Reducer == "" {
			return at("reduce step requires reducer")
		}
		if len(s.Keys) == 0 {
			return at("reduce step requires keys")
		}
		if _, err := registry.Reducer(s.Reducer); err != nil {
			return at("%v", err)
		}
	case "join":
		if s.With == "" {
			return at("join step requires with")
		}
		if s.With == pipelineName {
			return at("join step cannot join a pipeline with itself")
		}
		if !names[s.With] {
			return at("join step references undeclared pipeline %q", s.With)
		}
		if len(s.Keys) == 0 {
			return at("join step requires keys")
		}
		if _, err := pipeline.ParseJoinStrategy(s.Strategy); err != nil {
			return at("%v", err)
		}
	default:
		return at("unknown step type %q", s.Type)
	}
	return nil
}
