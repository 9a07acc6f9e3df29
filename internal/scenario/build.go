// Package scenario loads a YAML scenario document describing a named
// composition of pre-registered pipeline templates, wires it into the
// Go-native pipeline graph those templates are built from, and plans the
// whole graph in one pass so pipelines shared across two other pipelines'
// sources are evaluated exactly once, the same guarantee a caller gets when
// building the graph by hand and calling pipeline.Plan directly.
package scenario

import (
	"fmt"

	"github.com/marachen/relflow/internal/pipeline"
	"github.com/marachen/relflow/internal/registry"
	"github.com/marachen/relflow/pkg/record"
)

// Graph is a built, finalized, and planned set of named pipelines ready to
// run. Output lets a caller discover which pipelines want their result
// written to disk once run.
type Graph struct {
	Pipelines map[string]*pipeline.Pipeline
	Output    map[string]string
	order     []string
}

// Roots returns the graph's pipelines in declaration order, suitable as the
// root set for a single shared pipeline.Plan call.
func (g *Graph) Roots() []*pipeline.Pipeline {
	out := make([]*pipeline.Pipeline, len(g.order))
	for i, name := range g.order {
		out[i] = g.Pipelines[name]
	}
	return out
}

// Build constructs a Graph from a validated Document. It assumes
// ValidateDocument has already accepted doc: an unregistered callback, an
// undeclared pipeline reference or an unknown join strategy still comes back
// as an error, but the other document checks (unique names, no
// self-reference, required step fields) are not repeated.
func Build(doc *Document) (*Graph, error) {
	g := &Graph{
		Pipelines: make(map[string]*pipeline.Pipeline, len(doc.Pipelines)),
		Output:    make(map[string]string),
	}

	for _, spec := range doc.Pipelines {
		g.Pipelines[spec.Name] = pipeline.New(spec.Name)
		g.order = append(g.order, spec.Name)
	}

	for _, spec := range doc.Pipelines {
		p := g.Pipelines[spec.Name]

		src, err := buildSource(spec.Source, g.Pipelines)
		if err != nil {
			return nil, fmt.Errorf("scenario: pipeline %q: %w", spec.Name, err)
		}
		p.SetSource(src)

		for i, step := range spec.Steps {
			if err := applyStep(p, step, g.Pipelines); err != nil {
				return nil, fmt.Errorf("scenario: pipeline %q step %d: %w", spec.Name, i, err)
			}
		}

		if err := p.Finalize(); err != nil {
			return nil, fmt.Errorf("scenario: pipeline %q: %w", spec.Name, err)
		}

		if spec.Output != "" {
			g.Output[spec.Name] = spec.Output
		}
	}

	if err := pipeline.Plan(g.Roots()...); err != nil {
		return nil, err
	}

	return g, nil
}

func buildSource(spec SourceSpec, pipelines map[string]*pipeline.Pipeline) (pipeline.Source, error) {
	if spec.File != "" {
		return pipeline.FileSource(spec.File), nil
	}
	other, ok := pipelines[spec.Pipeline]
	if !ok {
		return pipeline.Source{}, fmt.Errorf("references undeclared pipeline %q", spec.Pipeline)
	}
	return pipeline.PipelineSource(other), nil
}

func applyStep(p *pipeline.Pipeline, step StepSpec, pipelines map[string]*pipeline.Pipeline) error {
	switch step.Type {
	case "map":
		fn, err := registry.Mapper(step.Mapper)
		if err != nil {
			return err
		}
		_, err = p.Map(fn)
		return err

	case "sort":
		_, err := p.Sort(step.Keys)
		return err

	case "fold":
		fn, err := registry.Folder(step.Folder)
		if err != nil {
			return err
		}
		initial, err := record.New(step.Initial)
		if err != nil {
			return fmt.Errorf("fold initial accumulator: %w", err)
		}
		_, err = p.Fold(fn, initial)
		return err

	case "reduce":
		fn, err := registry.Reducer(step.Reducer)
		if err != nil {
			return err
		}
		_, err = p.Reduce(fn, step.Keys)
		return err

	case "join":
		other, ok := pipelines[step.With]
		if !ok {
			return fmt.Errorf("references undeclared pipeline %q", step.With)
		}
		strategy, err := pipeline.ParseJoinStrategy(step.Strategy)
		if err != nil {
			return err
		}
		_, err = p.Join(other, step.Keys, strategy)
		return err

	default:
		return fmt.Errorf("unknown step type %q", step.Type)
	}
}
