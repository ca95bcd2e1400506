package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/achievements"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/router"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/session"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/layout"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/theme"
)

// SummaryScreen displays the result of a finished quiz.
type SummaryScreen struct {
	summary session.Summary
	earned  []achievements.Achievement
	onRetry func() tea.Cmd
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.EscapeHandler = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. earned lists the achievements unlocked
// during the session; onRetry may be nil.
func New(sum session.Summary, earned []achievements.Achievement, onRetry func() tea.Cmd) *SummaryScreen {
	return &SummaryScreen{summary: sum, earned: earned, onRetry: onRetry}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) HandlesEscape() bool {
	return true
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
	if s.onRetry != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Play again"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "r", "R":
			if s.onRetry != nil {
				return s, s.onRetry()
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(center.Render(sum.Grade.Medal()))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(sum.Grade.Title()))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("+%d points   ·   total %d", sum.PointsEarned, sum.FinalScore)))
	b.WriteString("\n\n")

	mins := int(sum.Duration().Minutes())
	secs := int(sum.Duration().Seconds()) % 60
	statsLine := fmt.Sprintf("Questions: %d      Correct: %d      Accuracy: %.0f%%      Time: %d:%02d",
		sum.QuestionsAnswered, sum.CorrectAnswers, sum.Accuracy()*100, mins, secs)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).
		Render(fmt.Sprintf("Average answer time %.1fs", sum.AverageTimeMs/1000)))
	b.WriteString("\n\n")

	if len(s.earned) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString(center.Foreground(theme.TextDim).Render("Achievements"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")
		for _, a := range s.earned {
			b.WriteString(center.Foreground(theme.Parchment).
				Render(fmt.Sprintf("%s %s: %s", a.Icon, a.Title, a.Description)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
