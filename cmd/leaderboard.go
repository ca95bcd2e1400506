package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"top"},
	Short:   "Show players ranked by score",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		board := e.deps.Roster.Leaderboard(ctx)
		if len(board) == 0 {
			fmt.Println("No players yet.")
			return nil
		}
		cur, _ := e.deps.Roster.Current(ctx)

		fmt.Printf("%-4s %-5s  %-24s  %6s\n", "", "Rank", "Name", "Score")
		fmt.Println(strings.Repeat("─", 46))
		for i, s := range board {
			if limit > 0 && i >= limit {
				break
			}
			you := ""
			if s.User.ID == cur.ID {
				you = "  (current)"
			}
			fmt.Printf("%-4s %4d.  %-24s  %6d%s\n", s.Badge, s.Rank, s.User.Name, s.User.Score, you)
		}
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().IntP("limit", "n", 10, "Number of players to show (0 for all)")
}
