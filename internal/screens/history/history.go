package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/roster"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/router"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/store"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/layout"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/theme"
)

// Limit caps how many sessions are loaded.
const Limit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionEvent
	Err      error
}

// HistoryScreen displays past quiz sessions, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	roster    *roster.Roster
	sessions  []store.SessionEvent
	mineOnly  bool
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps screen.Deps) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: deps.Events,
		roster:    deps.Roster,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) load() tea.Cmd {
	repo, r, mine := s.eventRepo, s.roster, s.mineOnly
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		ctx := context.Background()

		userID := ""
		if mine && r != nil {
			u, ok := r.Current(ctx)
			if !ok {
				return historyLoadedMsg{}
			}
			userID = u.ID
		}
		sessions, err := repo.QuerySessionEvents(ctx, userID, store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	filter := "Mine only"
	if s.mineOnly {
		filter = "Everyone"
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "M", Description: filter},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
			s.sessions = msg.Sessions
		}
		s.selected = 0
		s.expanded = make(map[int]bool)
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		case "m", "M":
			s.mineOnly = !s.mineOnly
			s.loaded = false
			return s, s.load()
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start a quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		dateStr := sess.StartedAt.Format("Jan 02, 2006 15:04")

		var accuracy float64
		if sess.QuestionsAnswered > 0 {
			accuracy = float64(sess.CorrectAnswers) / float64(sess.QuestionsAnswered) * 100
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		status := ""
		if sess.Action == store.ActionAbandoned {
			status = "  (quit)"
		}

		line := fmt.Sprintf("%s%s  %-14s %d/%d correct  %.0f%%  +%d%s",
			prefix, dateStr, sess.UserName, sess.CorrectAnswers, sess.TotalQuestions,
			accuracy, sess.PointsEarned, status)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    answered %d of %d   avg %.1fs   final score %d",
				sess.QuestionsAnswered, sess.TotalQuestions, sess.AverageTimeMs/1000, sess.FinalScore)
			if !sess.EndedAt.IsZero() {
				d := sess.EndedAt.Sub(sess.StartedAt)
				detail += fmt.Sprintf("   took %d:%02d", int(d.Minutes()), int(d.Seconds())%60)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
