package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all data: questions, players, achievements and session history",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if !confirm(cmd, "Erase everything? The built-in questions come back on next start.") {
			fmt.Println("Cancelled.")
			return nil
		}
		ctx := cmd.Context()
		if err := e.deps.Roster.ClearAll(ctx); err != nil {
			return err
		}
		if events, err := e.events(); err == nil {
			if err := events.DeleteSessionEvents(ctx); err != nil {
				return fmt.Errorf("clear session history: %w", err)
			}
		}
		fmt.Println("All data erased.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
