package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "history-vault",
	Short: "History trivia quiz for the terminal",
	Long:  "History Vault: a terminal trivia quiz with a leaderboard, achievements and an admin panel for the question bank.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides HISTORY_VAULT_DB env var)")
	rootCmd.PersistentFlags().String("stats-scope", "", "Achievement stats scope: session or lifetime (overrides HISTORY_VAULT_STATS_SCOPE)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides HISTORY_VAULT_LOG_LEVEL)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then HISTORY_VAULT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// flagOrEnv returns the named flag when set, else the environment variable.
func flagOrEnv(cmd *cobra.Command, flag, env string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return os.Getenv(env)
}
