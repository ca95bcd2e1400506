// Package achievements lists every achievement and whether the current
// player has unlocked it.
package achievements

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	ach "github.com/facebookverify2025-dot/history-vault-ai/internal/achievements"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/roster"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/state"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/theme"
)

// Row is one achievement as shown to the player.
type Row struct {
	Achievement ach.Achievement
	Unlocked    bool
	UnlockedAt  time.Time
}

type loadedMsg struct {
	Rows   []Row
	Player string
}

// AchievementsScreen shows locked and unlocked achievements.
type AchievementsScreen struct {
	repo   *state.Repo
	roster *roster.Roster
	rows   []Row
	player string
	loaded bool
}

var _ screen.Screen = (*AchievementsScreen)(nil)

// New creates an AchievementsScreen.
func New(deps screen.Deps) *AchievementsScreen {
	return &AchievementsScreen{repo: deps.Repo, roster: deps.Roster}
}

// Rows pairs every definition with the player's unlock record, in
// declaration order.
func Rows(defs []ach.Achievement, records []ach.Unlocked, userID string) []Row {
	at := make(map[ach.ID]time.Time)
	for _, r := range ach.ForUser(records, userID) {
		at[r.ID] = r.UnlockedAt
	}
	rows := make([]Row, len(defs))
	for i, d := range defs {
		t, ok := at[d.ID]
		rows[i] = Row{Achievement: d, Unlocked: ok, UnlockedAt: t}
	}
	return rows
}

func (s *AchievementsScreen) Init() tea.Cmd {
	repo, r := s.repo, s.roster
	return func() tea.Msg {
		ctx := context.Background()
		u, ok := r.Current(ctx)
		if !ok {
			return loadedMsg{Rows: Rows(ach.Defaults(), nil, "")}
		}
		return loadedMsg{Rows: Rows(ach.Defaults(), repo.Achievements(ctx), u.ID), Player: u.Name}
	}
}

func (s *AchievementsScreen) Title() string {
	return "Achievements"
}

func (s *AchievementsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(loadedMsg); ok {
		s.rows = msg.Rows
		s.player = msg.Player
		s.loaded = true
	}
	return s, nil
}

func (s *AchievementsScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading achievements...")
	}

	unlocked := 0
	for _, r := range s.rows {
		if r.Unlocked {
			unlocked++
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	heading := fmt.Sprintf("%d of %d unlocked", unlocked, len(s.rows))
	if s.player != "" {
		heading = s.player + ": " + heading
	}
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(heading))
	b.WriteString("\n\n")

	for _, r := range s.rows {
		a := r.Achievement
		var card string
		if r.Unlocked {
			card = lipgloss.NewStyle().
				Width(56).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Parchment).
				Padding(0, 1).
				Render(fmt.Sprintf("%s  %s\n%s\n%s",
					a.Icon,
					lipgloss.NewStyle().Foreground(theme.Parchment).Bold(true).Render(a.Title),
					lipgloss.NewStyle().Foreground(theme.Text).Render(a.Description),
					lipgloss.NewStyle().Foreground(theme.TextDim).Render("Unlocked "+r.UnlockedAt.Format("Jan 02, 2006"))))
		} else {
			card = lipgloss.NewStyle().
				Width(56).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Border).
				Foreground(theme.TextDim).
				Padding(0, 1).
				Render(fmt.Sprintf("🔒  %s\n%s", a.Title, a.Description))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
		b.WriteString("\n")
	}
	return b.String()
}
