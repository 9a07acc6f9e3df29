package scenario

import "fmt"

// RunResults is the per-pipeline output of a full graph run: each pipeline's
// result record count. Because the whole graph was planned together in
// Build, a pipeline referenced as another's source is materialized at most
// once even though RunAll visits it again when its own turn comes.
type RunResults map[string]int

// RunAll executes every pipeline in declaration order and writes configured
// outputs, returning the number of records each pipeline produced.
func (g *Graph) RunAll() (RunResults, error) {
	results := make(RunResults, len(g.order))
	for _, name := range g.order {
		p := g.Pipelines[name]
		out, err := p.Run()
		if err != nil {
			return nil, fmt.Errorf("scenario: pipeline %q: %w", name, err)
		}
		results[name] = len(out)

		if path, ok := g.Output[name]; ok {
			if err := p.SaveOutput(path); err != nil {
				return nil, fmt.Errorf("scenario: pipeline %q: %w", name, err)
			}
		}
	}
	return results, nil
}
