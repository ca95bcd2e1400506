package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/roster"
)

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"players"},
	Short:   "Manage players",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		users := e.deps.Roster.Users(ctx)
		if len(users) == 0 {
			fmt.Println("No players registered yet.")
			return nil
		}
		cur, _ := e.deps.Roster.Current(ctx)

		fmt.Printf("  %-36s  %-24s  %4s  %-6s  %6s\n", "ID", "Name", "Age", "Gender", "Score")
		fmt.Println(strings.Repeat("─", 86))
		for _, u := range users {
			mark := " "
			if u.ID == cur.ID {
				mark = "*"
			}
			fmt.Printf("%s %-36s  %-24s  %4d  %-6s  %6d\n", mark, u.ID, u.Name, u.Age, u.Gender, u.Score)
		}
		return nil
	},
}

var usersRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a player and make them the current player",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		age, _ := cmd.Flags().GetInt("age")
		g, _ := cmd.Flags().GetString("gender")
		gender, err := quiz.ParseGender(g)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		u, err := e.deps.Roster.Register(cmd.Context(), name, age, gender)
		if err != nil {
			return err
		}
		fmt.Printf("Registered %s (%s). They are now the current player.\n", u.Name, u.ID)
		return nil
	},
}

var usersSwitchCmd = &cobra.Command{
	Use:   "switch <id|name>",
	Short: "Make another registered player current",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		target, err := findUser(e.deps.Roster.Users(ctx), args[0])
		if err != nil {
			return err
		}
		u, err := e.deps.Roster.Switch(ctx, target.ID)
		if err != nil {
			return err
		}
		fmt.Println("Now playing as", u.Name)
		return nil
	},
}

var usersResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the leaderboard: remove every player, score and achievement",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if !confirm(cmd, "Remove every player, their scores and achievements?") {
			fmt.Println("Cancelled.")
			return nil
		}
		ctx := cmd.Context()
		if err := e.deps.Roster.ResetAll(ctx); err != nil {
			return err
		}
		if events, err := e.events(); err == nil {
			if err := events.DeleteSessionEvents(ctx); err != nil {
				return fmt.Errorf("clear session history: %w", err)
			}
		}
		fmt.Println("Leaderboard reset.")
		return nil
	},
}

// findUser resolves an exact ID or a case-insensitive unique name.
func findUser(users []quiz.User, ref string) (quiz.User, error) {
	var matches []quiz.User
	for _, u := range users {
		if u.ID == ref {
			return u, nil
		}
		if strings.EqualFold(u.Name, ref) {
			matches = append(matches, u)
		}
	}
	switch len(matches) {
	case 0:
		return quiz.User{}, fmt.Errorf("%w: %q", roster.ErrUnknownUser, ref)
	case 1:
		return matches[0], nil
	}
	return quiz.User{}, errors.New("several players are called " + ref + "; use the ID from 'users list'")
}

func init() {
	usersRegisterCmd.Flags().String("name", "", "Player name")
	usersRegisterCmd.Flags().Int("age", 0, fmt.Sprintf("Age (%d-%d)", quiz.MinAge, quiz.MaxAge))
	usersRegisterCmd.Flags().String("gender", "", "male or female")
	usersRegisterCmd.MarkFlagRequired("name")
	usersRegisterCmd.MarkFlagRequired("age")
	usersRegisterCmd.MarkFlagRequired("gender")

	usersResetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersRegisterCmd)
	usersCmd.AddCommand(usersSwitchCmd)
	usersCmd.AddCommand(usersResetCmd)
}
