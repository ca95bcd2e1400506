package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/session"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/components"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n%s\n\nPress any key to go back.", s.errMsg))
	case !s.started:
		return center.Foreground(theme.TextDim).
			Render("\n\n  Opening the vault...")
	case s.state.Phase == session.PhaseEmpty:
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\nThe vault has no questions yet.\nAdd some from the Admin screen.")
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(min(width-8, 70)).Render(s.mc.View())))
	b.WriteString("\n")

	if s.outcome != nil {
		b.WriteString(s.renderFeedback(width))
		b.WriteString("\n")
	}

	if s.quitConfirm {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Accent).Bold(true).
			Render("Quit this quiz? Your score so far is kept. (y/n)"))
		b.WriteString("\n")
	}

	if len(s.toast) > 0 {
		b.WriteString("\n")
		b.WriteString(s.renderToast(width))
	}

	return b.String()
}

// renderInfoLine shows the progress meter on the left and score and streak
// on the right.
func (s *PlayScreen) renderInfoLine(width int) string {
	stats := s.game.Engine().Stats()

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d   %s %d",
			lipgloss.NewStyle().Foreground(theme.Accent).Render("★"),
			stats.CurrentScore,
			lipgloss.NewStyle().Foreground(theme.Error).Render("🔥"),
			stats.Streak,
		))

	meter := components.QuizProgress{Index: s.state.Index, Total: s.state.Total}
	left := "  " + meter.View(min(width-lipgloss.Width(right)-8, 72))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func (s *PlayScreen) renderFeedback(width int) string {
	out := s.outcome
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var verdict string
	if out.Correct {
		verdict = theme.Correct.Render(fmt.Sprintf("Correct! +%d points", out.Points))
	} else {
		verdict = theme.Incorrect.Render("Not quite. The answer was " + out.CorrectAnswer)
	}
	secs := float64(out.TimeTakenMs) / 1000
	timing := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Answered in %.1fs", secs))

	next := "Next question"
	if s.game.Engine().IsLast() {
		next = "See results"
	}
	hint := theme.Hint.Render(fmt.Sprintf("%s in %d seconds, or press any key", next, int(AdvanceDelay.Seconds())))

	return center.Render(verdict) + "\n" + center.Render(timing) + "\n\n" + center.Render(hint)
}

func (s *PlayScreen) renderToast(width int) string {
	lines := make([]string, 0, len(s.toast))
	for _, a := range s.toast {
		lines = append(lines, fmt.Sprintf("%s Achievement unlocked: %s", a.Icon, a.Title))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Toast.Render(strings.Join(lines, "\n")))
}
