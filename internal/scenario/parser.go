package scenario

import (
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	relflowerrors "github.com/marachen/relflow/pkg/errors"
)

// yamlLineRegex matches the "line N" fragment gopkg.in/yaml.v3 embeds in its
// decode error messages; it is dictated by that library's error format, not
// a choice of ours.
var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// parseStage is one step of loading a scenario document: read the bytes,
// decode them, then validate the result. Each stage's failure is reported
// with its own line hint, computed only where a line number is meaningful
// (decode errors quote one; read and validate failures don't).
type parseStage struct {
	name string
	run  func() error
	line func(error) int
}

// ParseDocument loads a scenario file from disk, validates it, and returns
// the resulting document. Decode errors and validation failures are both
// returned as a SourceParseError carrying the offending line, when the
// underlying YAML decoder reports one.
func ParseDocument(path string) (*Document, error) {
	var data []byte
	var doc Document
	noLine := func(error) int { return 0 }

	stages := []parseStage{
		{name: "read", run: func() error {
			b, err := os.ReadFile(path)
			data = b
			return err
		}, line: noLine},
		{name: "decode", run: func() error {
			return yaml.Unmarshal(data, &doc)
		}, line: extractLine},
		{name: "validate", run: func() error {
			return ValidateDocument(&doc)
		}, line: noLine},
	}

	for _, stage := range stages {
		if err := stage.run(); err != nil {
			return nil, relflowerrors.NewSourceParseError(path, stage.line(err), err)
		}
	}

	return &doc, nil
}

// extractLine recovers the line number yaml.v3 reports in a decode error's
// message, or 0 if err carries none.
func extractLine(err error) int {
	if err == nil {
		return 0
	}
	match := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(match) != 2 {
		return 0
	}
	line, convErr := strconv.Atoi(match[1])
	if convErr != nil {
		return 0
	}
	return line
}
