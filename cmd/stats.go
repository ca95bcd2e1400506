package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show question bank and player statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		st := e.deps.Roster.Stats(ctx)
		fmt.Printf("Questions:      %d\n", st.TotalQuestions)
		fmt.Printf("Players:        %d\n", st.TotalUsers)
		fmt.Printf("Highest score:  %d\n", st.HighestScore)
		fmt.Printf("Average score:  %d\n", st.AverageScore)

		u, ok := e.deps.Roster.Current(ctx)
		if !ok {
			return nil
		}
		life := e.deps.Repo.LifetimeStats(ctx, u.ID)
		fmt.Printf("\nCurrent player: %s (%d points)\n", u.Name, u.Score)
		fmt.Printf("Sessions:       %d\n", life.TotalSessions)
		fmt.Printf("Answered:       %d\n", life.QuestionsAnswered)
		fmt.Printf("Correct:        %d (%.0f%%)\n", life.CorrectAnswers, life.Accuracy()*100)
		fmt.Printf("Average time:   %.1fs\n", life.AverageTime/1000)
		fmt.Printf("Stats scope:    %s\n", e.deps.Scope)
		return nil
	},
}
