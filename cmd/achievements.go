package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/achievements"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements [player]",
	Short: "Show unlocked achievements for the current or a named player",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		u, ok := e.deps.Roster.Current(ctx)
		if len(args) == 1 {
			found, err := findUser(e.deps.Roster.Users(ctx), args[0])
			if err != nil {
				return err
			}
			u, ok = found, true
		}
		if !ok {
			return errors.New("no current player: register one or name a player")
		}

		unlocked := make(map[achievements.ID]achievements.Unlocked)
		for _, r := range achievements.ForUser(e.deps.Repo.Achievements(ctx), u.ID) {
			unlocked[r.ID] = r
		}

		defs := achievements.Defaults()
		fmt.Printf("%s: %d of %d unlocked\n\n", u.Name, len(unlocked), len(defs))
		for _, a := range defs {
			r, has := unlocked[a.ID]
			if !has {
				fmt.Printf("🔒 %-16s  %s\n", a.Title, a.Description)
				continue
			}
			fmt.Printf("%s %-16s  %s  (%s)\n", a.Icon, a.Title, a.Description,
				r.UnlockedAt.Local().Format("2006-01-02"))
		}
		return nil
	},
}
