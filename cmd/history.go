package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past quiz sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		mine, _ := cmd.Flags().GetBool("mine")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		userID := ""
		if mine {
			u, ok := e.deps.Roster.Current(ctx)
			if !ok {
				fmt.Println("No current player.")
				return nil
			}
			userID = u.ID
		}

		events, err := e.events()
		if err != nil {
			return err
		}
		sessions, err := events.QuerySessionEvents(ctx, userID, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		fmt.Printf("%-16s  %-20s  %-9s  %6s  %7s  %7s  %s\n",
			"Started", "Player", "Correct", "Points", "Score", "Avg", "")
		fmt.Println(strings.Repeat("─", 84))
		for _, s := range sessions {
			status := ""
			if s.Action == store.ActionAbandoned {
				status = "quit"
			}
			fmt.Printf("%-16s  %-20s  %4d/%-4d  %+6d  %7d  %6.1fs  %s\n",
				s.StartedAt.Local().Format("2006-01-02 15:04"),
				truncate(s.UserName, 20),
				s.CorrectAnswers, s.TotalQuestions,
				s.PointsEarned, s.FinalScore,
				s.AverageTimeMs/1000,
				status,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	historyCmd.Flags().BoolP("mine", "m", false, "Only the current player's sessions")
}
