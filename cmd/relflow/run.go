package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marachen/relflow/internal/logger"
	"github.com/marachen/relflow/internal/scenario"
)

type runOptions struct {
	ScenarioPath string
}

func newRunCmd(root *rootFlags) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build and execute every pipeline described by a scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ScenarioPath, "scenario", "s", "", "Path to the scenario YAML file")
	cmd.MarkFlagRequired("scenario") //nolint:errcheck

	return cmd
}

func runScenario(cmd *cobra.Command, root *rootFlags, opts runOptions) error {
	level := "info"
	if root.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: true, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}

	doc, err := scenario.ParseDocument(opts.ScenarioPath)
	if err != nil {
		return err
	}

	g, err := scenario.Build(doc)
	if err != nil {
		return err
	}
	for _, p := range g.Roots() {
		p.WithLogger(log)
	}

	results, err := g.RunAll()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range g.Roots() {
		fmt.Fprintf(out, "%s: %d records\n", p.Name(), results[p.Name()])
	}
	return nil
}
