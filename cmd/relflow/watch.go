package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marachen/relflow/internal/pipeline"
	"github.com/marachen/relflow/internal/progress"
	"github.com/marachen/relflow/internal/scenario"
)

type watchOptions struct {
	ScenarioPath string
}

func newWatchCmd(root *rootFlags) *cobra.Command {
	opts := watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run a scenario's pipelines with a live state dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchScenario(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ScenarioPath, "scenario", "s", "", "Path to the scenario YAML file")
	cmd.MarkFlagRequired("scenario") //nolint:errcheck

	return cmd
}

func watchScenario(cmd *cobra.Command, opts watchOptions) error {
	doc, err := scenario.ParseDocument(opts.ScenarioPath)
	if err != nil {
		return err
	}

	g, err := scenario.Build(doc)
	if err != nil {
		return err
	}

	roots := g.Roots()
	names := make([]string, len(roots))
	events := make(chan progress.StateMsg, 16)
	for i, p := range roots {
		names[i] = p.Name()
		p.WithObserver(func(name string, s pipeline.State) {
			events <- progress.StateMsg{Name: name, State: s}
		})
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	runErrCh := make(chan error, 1)
	go func() {
		_, err := g.RunAll()
		close(events)
		runErrCh <- err
	}()

	if err := progress.Watch(interactive, cmd.OutOrStdout(), names, events); err != nil {
		return err
	}
	return <-runErrCh
}
