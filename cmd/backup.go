package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup [file]",
	Short: "Write questions, players and achievements to a JSON backup (stdout by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if len(args) == 0 || args[0] == "-" {
			return e.deps.Roster.Backup(cmd.Context(), os.Stdout)
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		if err := e.deps.Roster.Backup(cmd.Context(), f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Backup written to", args[0])
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace questions, players and achievements with a backup (- for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if args[0] != "-" && !confirm(cmd, "Replace the current questions, players and achievements?") {
			fmt.Println("Cancelled.")
			return nil
		}
		b, err := e.deps.Roster.Restore(cmd.Context(), r)
		if err != nil {
			return err
		}
		fmt.Printf("Restored %d questions, %d players and %d achievements from a %s backup (version %s).\n",
			len(b.Questions), len(b.Users), len(b.Achievements),
			b.Timestamp.Local().Format("2006-01-02 15:04"), b.AppVersion)
		return nil
	},
}

func init() {
	restoreCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
