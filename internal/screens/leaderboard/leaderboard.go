// Package leaderboard ranks every registered player by score.
package leaderboard

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/roster"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/layout"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/theme"
)

type loadedMsg struct {
	Standings []roster.Standing
	CurrentID string
}

// LeaderboardScreen shows a podium for the top three and a table below.
type LeaderboardScreen struct {
	roster    *roster.Roster
	standings []roster.Standing
	currentID string
	selected  int
	loaded    bool
	notice    string
}

var _ screen.Screen = (*LeaderboardScreen)(nil)
var _ screen.KeyHintProvider = (*LeaderboardScreen)(nil)

// New creates a LeaderboardScreen.
func New(deps screen.Deps) *LeaderboardScreen {
	return &LeaderboardScreen{roster: deps.Roster}
}

func (s *LeaderboardScreen) Init() tea.Cmd {
	r := s.roster
	return func() tea.Msg {
		ctx := context.Background()
		msg := loadedMsg{Standings: r.Leaderboard(ctx)}
		if u, ok := r.Current(ctx); ok {
			msg.CurrentID = u.ID
		}
		return msg
	}
}

func (s *LeaderboardScreen) Title() string {
	return "Leaderboard"
}

func (s *LeaderboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play as"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LeaderboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.standings = msg.Standings
		s.currentID = msg.CurrentID
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.standings)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.standings) {
				u, err := s.roster.Switch(context.Background(), s.standings[s.selected].User.ID)
				if err != nil {
					s.notice = err.Error()
					return s, nil
				}
				s.currentID = u.ID
				s.notice = "Now playing as " + u.Name
			}
		}
	}
	return s, nil
}

func (s *LeaderboardScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading leaderboard...")
	}
	if len(s.standings) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No players yet. Register to claim the top spot!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderPodium()))
	b.WriteString("\n\n")

	for i, st := range s.standings {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		you := ""
		if st.User.ID == s.currentID {
			you = "  (you)"
		}
		line := fmt.Sprintf("%s%s %2d. %-24s %6d%s", prefix, st.Badge, st.Rank, st.User.Name, st.User.Score, you)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Accent).Render(s.notice))
	}
	return b.String()
}

// renderPodium lays out the top three as second, first, third.
func (s *LeaderboardScreen) renderPodium() string {
	order := []int{1, 0, 2}
	heights := []int{4, 5, 3}

	var cols []string
	for i, idx := range order {
		if idx >= len(s.standings) {
			continue
		}
		st := s.standings[idx]
		body := fmt.Sprintf("%s\n%s\n%d", st.Badge, st.User.Name, st.User.Score)
		cols = append(cols, lipgloss.NewStyle().
			Width(16).
			Height(heights[i]).
			Align(lipgloss.Center, lipgloss.Bottom).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(podiumColor(idx)).
			Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, cols...)
}

func podiumColor(idx int) color.Color {
	switch idx {
	case 0:
		return theme.Parchment
	case 1:
		return theme.TextDim
	}
	return theme.Accent
}
