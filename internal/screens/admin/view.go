package admin

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/components"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/theme"
)

// listWindow is how many questions the list shows at once.
const listWindow = 10

var formLabels = map[mode][]string{
	modeForm:     {"Question", "Choices", "Answer"},
	modeImport:   {"Import from"},
	modeExport:   {"Export to"},
	modeGenerate: {"Topic", "How many"},
	modeSetPin:   {"Passcode", "Repeat"},
}

var submitLabels = map[mode]string{
	modeForm:     "SAVE",
	modeImport:   "IMPORT",
	modeExport:   "EXPORT",
	modeGenerate: "GENERATE",
	modeSetPin:   "SET PASSCODE",
}

var formTitles = map[mode]string{
	modeForm:     "Add a question",
	modeImport:   "Import questions",
	modeExport:   "Export questions",
	modeGenerate: "Generate questions",
	modeSetPin:   "Set the admin passcode",
}

func (s *AdminScreen) View(width, height int) string {
	var body string
	switch s.mode {
	case modeLocked:
		body = s.viewLocked()
	case modeMenu:
		body = s.viewMenu(width)
	case modeList:
		body = s.viewList(width)
	case modeConfirmReset:
		body = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render("Remove every player, their scores and achievements? (y/n)")
	default:
		body = s.viewForm(width)
	}

	sections := []string{body}
	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	if s.notice != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Success).Render(s.notice))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (s *AdminScreen) viewLocked() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("🔐 Admin area"),
		"",
		theme.Subtitle.Render("Enter the admin passcode"),
		"",
		s.pin.View(),
	)
}

func (s *AdminScreen) viewMenu(width int) string {
	st := s.stats
	stats := fmt.Sprintf("Questions %d   Players %d   Top score %d   Average %d",
		st.TotalQuestions, st.TotalUsers, st.HighestScore, st.AverageScore)
	statsBox := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Sky).
		Foreground(theme.Sky).
		Padding(0, 1).
		Render(stats)

	menu := s.menu.View()
	if !s.deps.Questions.CanGenerate() {
		menu += theme.Hint.Render("  Set an LLM API key to enable generation")
	}

	cw := components.ContentWidth(width)
	return lipgloss.JoinVertical(lipgloss.Center,
		statsBox,
		"",
		components.ArcadeCard(lipgloss.NewStyle().Align(lipgloss.Left).Render(menu), cw),
	)
}

func (s *AdminScreen) viewList(width int) string {
	if len(s.bank) == 0 {
		return theme.Hint.Render("The question bank is empty.")
	}

	start := 0
	if s.selected >= listWindow {
		start = s.selected - listWindow + 1
	}
	end := min(start+listWindow, len(s.bank))

	lineWidth := min(width-8, 90)
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d of %d", s.selected+1, len(s.bank))))
	b.WriteString("\n\n")
	for i := start; i < end; i++ {
		q := s.bank[i]
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := truncate(fmt.Sprintf("%s[%s] %s", prefix, q.Source.Label(), q.Text), lineWidth)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	q := s.bank[s.selected]
	var detail []string
	for i, c := range q.Choices {
		mark := "  "
		if c == q.CorrectAnswer {
			mark = "✓ "
		}
		detail = append(detail, fmt.Sprintf("%s%s) %s", mark, components.OptionLabel(i), c))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Join(detail, "\n")))

	if s.confirm {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render("Delete this question? (y/n)"))
	}
	return lipgloss.NewStyle().Width(lineWidth).Render(b.String())
}

func (s *AdminScreen) viewForm(width int) string {
	labels := formLabels[s.mode]
	title := formTitles[s.mode]
	if s.mode == modeForm && s.editID != "" {
		title = "Edit question"
	}

	var rows []string
	for i, f := range s.fields {
		style := lipgloss.NewStyle().Foreground(theme.TextDim).Width(12)
		if i == s.focus {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		rows = append(rows, style.Render(label)+f.View())
	}

	if s.generating {
		rows = append(rows, "", theme.Hint.Render("Asking the model for questions..."))
	}

	cw := min(width-6, 90)
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render(title),
		"",
		components.ArcadeCard(lipgloss.NewStyle().Align(lipgloss.Left).Render(strings.Join(rows, "\n\n")), cw),
		"",
		s.viewSubmit(),
	)
}

// viewSubmit is the form's submit button, greyed out with the reason while
// the form is incomplete.
func (s *AdminScreen) viewSubmit() string {
	label := submitLabels[s.mode]
	problem := s.formProblem()
	if problem == "" {
		return components.ArcadeButton(label, s.focus == len(s.fields)-1, 22)
	}
	btn := lipgloss.NewStyle().
		Width(22).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(label)
	return lipgloss.JoinVertical(lipgloss.Center, btn, theme.Hint.Render(problem))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
