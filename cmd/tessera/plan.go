package main

import (
	"github.com/aretw0/tessera/pkg/editor"
	"github.com/aretw0/tessera/pkg/plan"
	"github.com/spf13/cobra"
)

// buildPlan loads a plan file and replays it on a fresh session.
func buildPlan(cmd *cobra.Command, path string) (*plan.Plan, *editor.Session, error) {
	p, err := plan.Load(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := plan.Build(cmd.Context(), p,
		editor.WithHooks(planHooks()),
		editor.WithLogger(logger),
		editor.WithAssertions(cfg.Assertions),
		editor.WithMaxContentSize(cfg.MaxContentSize),
	)
	if err != nil {
		return nil, nil, err
	}
	return p, s, nil
}
