package cmd

import (
	"github.com/abhisek/lingodrill/internal/app"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the drill TUI (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the stores, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.loadCorpus(ctx); err != nil {
		return err
	}

	c := e.buildCollaborators(ctx)
	return app.Run(app.Deps{
		Store:      e.corpus,
		NewSession: e.newSession(c.grader),
		Synth:      c.synth,
		Player:     c.player,
		Warnings:   c.warnings,
		Timeout:    e.cfg.CallTimeout,
		Log:        e.log,
	})
}
