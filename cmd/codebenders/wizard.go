package main

import (
	"context"

	"github.com/spf13/cobra"

	"codebenders/internal/client/tui"
	"codebenders/internal/client/wizard"
)

func newWizardCmd(a *app) *cobra.Command {
	var stepName, exportDir string
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Open the interactive project wizard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireProject(); err != nil {
				return err
			}
			step := wizard.Requirements
			if stepName != "" {
				s, err := wizard.ParseStep(stepName)
				if err != nil {
					return err
				}
				step = s
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			// Another codebenders process may log out or switch projects
			// while the wizard is open.
			go func() {
				err := a.store.Watch(ctx, func() {
					a.log.Debug("cli", "State file changed on disk", map[string]interface{}{"path": a.cfg.Client.StatePath})
				})
				if err != nil {
					a.log.Warn("cli", "State file watcher stopped", map[string]interface{}{"error": err.Error()})
				}
			}()

			return tui.Run(ctx, a.deps, step, tui.Options{ExportDir: exportDir})
		},
	}
	cmd.Flags().StringVarP(&stepName, "step", "s", "", "step to open: name, slug or number (default requirements)")
	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "directory for performance report exports")
	return cmd
}
