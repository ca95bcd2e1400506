package home

import (
	"context"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/achievements"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/router"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screens/admin"
	achscreen "github.com/facebookverify2025-dot/history-vault-ai/internal/screens/achievements"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screens/history"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screens/leaderboard"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screens/play"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screens/register"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/components"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/theme"
)

// stats is what the home screen shows about the current player.
type stats struct {
	hasPlayer    bool
	name         string
	score        int
	rank         int
	players      int
	unlocked     int
	achievements int
	questions    int
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps       screen.Deps
	menu       components.Menu
	menuLabels []string
	stats      stats
	notices    []string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumable = (*HomeScreen)(nil)

// PlayCmd opens a quiz for the current player, or the registration form
// when nobody is registered.
func PlayCmd(deps screen.Deps) tea.Cmd {
	var next screen.Screen
	if _, ok := deps.Roster.Current(context.Background()); ok {
		next = play.New(deps)
	} else {
		next = register.New(deps)
	}
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

// New creates a new HomeScreen.
func New(deps screen.Deps) *HomeScreen {
	menuLabels := []string{"PLAY QUIZ", "NEW PLAYER", "LEADERBOARD", "ACHIEVEMENTS", "HISTORY", "ADMIN", "EXIT"}

	push := func(build func(screen.Deps) screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build(deps)
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd { return PlayCmd(deps) }},
		{Label: menuLabels[1], Action: push(func(d screen.Deps) screen.Screen { return register.New(d) })},
		{Label: menuLabels[2], Action: push(func(d screen.Deps) screen.Screen { return leaderboard.New(d) })},
		{Label: menuLabels[3], Action: push(func(d screen.Deps) screen.Screen { return achscreen.New(d) })},
		{Label: menuLabels[4], Action: push(func(d screen.Deps) screen.Screen { return history.New(d) })},
		{Label: menuLabels[5], Action: push(func(d screen.Deps) screen.Screen { return admin.New(d) })},
		{Label: menuLabels[6], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h := &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
	h.stats = loadStats(deps)
	h.notices = drainNotices(deps)
	return h
}

// drainNotices takes the data notices raised since the last call, most
// recent last, without repeats.
func drainNotices(deps screen.Deps) []string {
	var out []string
	for _, n := range deps.Repo.Notices() {
		msg := n.Message
		if msg != "" {
			msg = strings.ToUpper(msg[:1]) + msg[1:]
		}
		if !slices.Contains(out, msg) {
			out = append(out, msg)
		}
	}
	return out
}

// loadStats reads the player's standing from the store.
func loadStats(deps screen.Deps) stats {
	ctx := context.Background()
	st := stats{
		achievements: len(achievements.Defaults()),
		questions:    len(deps.Repo.Questions(ctx)),
	}
	u, ok := deps.Roster.Current(ctx)
	if !ok {
		return st
	}
	st.hasPlayer = true
	st.name = u.Name
	st.score = u.Score

	board := deps.Roster.Leaderboard(ctx)
	st.players = len(board)
	for _, s := range board {
		if s.User.ID == u.ID {
			st.rank = s.Rank
			st.score = s.User.Score
		}
	}
	st.unlocked = len(achievements.SetFor(deps.Repo.Achievements(ctx), u.ID))
	return st
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes the stats after a quiz, registration or reset.
func (h *HomeScreen) Resume() tea.Cmd {
	h.stats = loadStats(h.deps)
	h.notices = drainNotices(h.deps)
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case h.stats.questions == 0:
		return MascotAlert
	case h.stats.hasPlayer && h.stats.rank == 1 && h.stats.score > 0:
		return MascotCelebrating
	}
	return MascotIdle
}

func (h *HomeScreen) greeting() string {
	if !h.stats.hasPlayer {
		return "Welcome, traveller. Who will enter the vault?"
	}
	return "Welcome back, " + h.stats.name + "!"
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 34 || width < 100

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}

	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(h.greeting()))

	sections = append(sections, renderStatsBar(h.stats, cw, compact))

	if len(h.notices) > 0 {
		sections = append(sections, renderNoticeBanner(h.notices, cw))
	}

	if h.stats.questions == 0 {
		sections = append(sections, renderEmptyBanner(cw))
	}

	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw, nil))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw, nil))
	}

	content := strings.Join(sections, "\n\n")

	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
