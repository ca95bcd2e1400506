package cmd

import (
	"github.com/spf13/cobra"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, startQuiz bool) error {
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(app.Options{
		Deps:      e.deps,
		StartQuiz: startQuiz,
	})
}
