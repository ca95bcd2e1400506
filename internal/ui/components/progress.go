package components

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/theme"
)

// QuizProgress is the "Question n of N" meter above a question.
type QuizProgress struct {
	Index int // zero-based position of the question on screen
	Total int
}

// Fraction is how far into the quiz the player is, counting the question
// on screen.
func (p QuizProgress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(float64(p.Index+1)/float64(p.Total), 1)
}

// Percent is Fraction rounded to a whole percentage.
func (p QuizProgress) Percent() int {
	return int(math.Round(p.Fraction() * 100))
}

// Label names the question on screen.
func (p QuizProgress) Label() string {
	return fmt.Sprintf("Question %d of %d", p.Index+1, p.Total)
}

// View renders the label, a bar and the percentage in width cells.
func (p QuizProgress) View(width int) string {
	label := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(p.Label())
	pct := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%3d%%", p.Percent()))

	bar := max(width-lipgloss.Width(label)-lipgloss.Width(pct)-4, 4)
	filled := min(int(math.Round(float64(bar)*p.Fraction())), bar)

	return label + "  " +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", bar-filled)) +
		"  " + pct
}
