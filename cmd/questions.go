package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/llm"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/questions"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
)

// generateTimeout bounds one generation request including retries.
const generateTimeout = 2 * time.Minute

var questionsCmd = &cobra.Command{
	Use:     "questions",
	Aliases: []string{"q"},
	Short:   "Manage the question bank",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every question",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		qs := e.deps.Questions.List(cmd.Context())
		if len(qs) == 0 {
			fmt.Println("The question bank is empty.")
			return nil
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		fmt.Printf("%-36s  %-9s  %s\n", "ID", "Source", "Question")
		fmt.Println(strings.Repeat("─", 100))
		for _, q := range qs {
			fmt.Printf("%-36s  %-9s  %s\n", q.ID, q.Source.Label(), q.Text)
			if verbose {
				for _, c := range q.Choices {
					mark := " "
					if c == q.CorrectAnswer {
						mark = "✓"
					}
					fmt.Printf("%-36s  %-9s    %s %s\n", "", "", mark, c)
				}
			}
		}
		fmt.Printf("\n%d questions\n", len(qs))
		return nil
	},
}

var questionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a question",
	Example: `  history-vault questions add --text "Who crossed the Rubicon?" \
    --choices "Julius Caesar; Pompey; Crassus" --answer "Julius Caesar"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _ := cmd.Flags().GetString("text")
		choices, _ := cmd.Flags().GetString("choices")
		answer, _ := cmd.Flags().GetString("answer")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		q, err := e.deps.Questions.Add(cmd.Context(), text, questions.SplitChoices(choices), answer, quiz.SourceManual)
		if err != nil {
			return err
		}
		fmt.Println("Added", q.ID)
		return nil
	},
}

var questionsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a question; unset flags keep their current value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		q, err := e.deps.Questions.Get(ctx, args[0])
		if err != nil {
			return err
		}
		text, choices, answer := q.Text, q.Choices, q.CorrectAnswer
		if cmd.Flags().Changed("text") {
			text, _ = cmd.Flags().GetString("text")
		}
		if cmd.Flags().Changed("choices") {
			v, _ := cmd.Flags().GetString("choices")
			choices = questions.SplitChoices(v)
		}
		if cmd.Flags().Changed("answer") {
			answer, _ = cmd.Flags().GetString("answer")
		}

		if _, err := e.deps.Questions.Edit(ctx, q.ID, text, choices, answer); err != nil {
			return err
		}
		fmt.Println("Updated", q.ID)
		return nil
	},
}

var questionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.deps.Questions.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

var questionsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import questions from a JSON array (- for stdin)",
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

		res, err := e.deps.Questions.Import(cmd.Context(), r)
		if errors.Is(err, questions.ErrMalformedImport) {
			return fmt.Errorf("%s is not a JSON array of questions: %w", args[0], err)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d questions, skipped %d invalid records.\n", res.Accepted, res.Dropped)
		return nil
	},
}

var questionsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the question bank as a JSON array (stdout by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if len(args) == 0 || args[0] == "-" {
			return e.deps.Questions.Export(cmd.Context(), os.Stdout)
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		if err := e.deps.Questions.Export(cmd.Context(), f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Exported to", args[0])
		return nil
	},
}

var questionsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate questions with the configured LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		count, _ := cmd.Flags().GetInt("count")

		e, err := openEnv(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		if !e.deps.Questions.CanGenerate() {
			return fmt.Errorf("%w: set HISTORY_VAULT_LLM_PROVIDER and its API key", questions.ErrNoGenerator)
		}

		ctx, cancel := withTimeout(cmd, generateTimeout)
		defer cancel()

		fmt.Fprintln(os.Stderr, "Asking the model for questions...")
		res, err := e.deps.Questions.Generate(ctx, topic, count)
		if err != nil {
			if llm.KindOf(err) != llm.KindOther {
				fmt.Fprintln(cmd.ErrOrStderr(), llm.Explain(err))
			}
			return err
		}
		for _, q := range res.Questions {
			fmt.Printf("+ %s (%s)\n", q.Text, q.CorrectAnswer)
		}
		for _, r := range res.Rejected {
			fmt.Printf("- %s: %s\n", r.Candidate.Text, r.Err)
		}
		fmt.Printf("Added %d generated questions (%d rejected).\n", len(res.Questions), len(res.Rejected))
		return nil
	},
}

func init() {
	questionsListCmd.Flags().BoolP("verbose", "v", false, "Show choices and the correct answer")

	for _, c := range []*cobra.Command{questionsAddCmd, questionsEditCmd} {
		c.Flags().String("text", "", "Question text")
		c.Flags().String("choices", "", "Choices separated by "+questions.ChoiceSeparator)
		c.Flags().String("answer", "", "The correct choice")
	}
	questionsAddCmd.MarkFlagRequired("text")
	questionsAddCmd.MarkFlagRequired("choices")
	questionsAddCmd.MarkFlagRequired("answer")

	questionsGenerateCmd.Flags().StringP("topic", "t", "", "Topic, era or region to ask about (empty for a mix)")
	questionsGenerateCmd.Flags().IntP("count", "n", 5, "Number of questions to request")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsAddCmd)
	questionsCmd.AddCommand(questionsEditCmd)
	questionsCmd.AddCommand(questionsDeleteCmd)
	questionsCmd.AddCommand(questionsImportCmd)
	questionsCmd.AddCommand(questionsExportCmd)
	questionsCmd.AddCommand(questionsGenerateCmd)
}
