package scenario

// Document is the top-level shape of a scenario YAML file: a named
// composition of pre-registered pipeline templates, the sources they read
// from, and the operations applied to each, in declaration order.
type Document struct {
	Version   string         `yaml:"version" validate:"required"`
	Name      string         `yaml:"name" validate:"required,min=1,max=100"`
	Pipelines []PipelineSpec `yaml:"pipelines" validate:"required,min=1,dive"`
}

// PipelineSpec describes one named pipeline: where it reads from, the
// operations it applies, and where its result is written, if anywhere.
type PipelineSpec struct {
	Name   string     `yaml:"name" validate:"required,scenario_name"`
	Source SourceSpec `yaml:"source" validate:"required"`
	Steps  []StepSpec `yaml:"steps,omitempty" validate:"omitempty,dive"`
	Output string     `yaml:"output,omitempty"`
}

// SourceSpec names exactly one of the three source kinds a pipeline
// understands: a newline-delimited JSON file on disk, or another pipeline's
// result. Slice sources have no YAML representation; they only exist when a
// pipeline is built directly from Go code.
type SourceSpec struct {
	File     string `yaml:"file,omitempty"`
	Pipeline string `yaml:"pipeline,omitempty"`
}

// StepSpec is one operator application. Type selects which of the other
// fields apply; unused fields for a given type are ignored.
type StepSpec struct {
	Type string `yaml:"type" validate:"required,oneof=map sort fold reduce join"`

	// map
	Mapper string `yaml:"mapper,omitempty"`

	// sort, reduce, join
	Keys []string `yaml:"keys,omitempty"`

	// fold
	Folder  string                 `yaml:"folder,omitempty"`
	Initial map[string]interface{} `yaml:"initial,omitempty"`

	// reduce
	Reducer string `yaml:"reducer,omitempty"`

	// join
	With     string `yaml:"with,omitempty"`
	Strategy string `yaml:"strategy,omitempty" validate:"omitempty,oneof=inner left right outer"`
}
