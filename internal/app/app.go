package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/router"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screens/home"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screens/welcome"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Deps screen.Deps

	// StartQuiz opens a quiz for the current player straight away, or the
	// registration form when there is none.
	StartQuiz bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	deps      screen.Deps
	startQuiz bool
	player    quiz.User
	hasPlayer bool
	width     int
	height    int
}

// newAppModel creates a new AppModel. It opens on the welcome splash unless
// a quiz was requested, in which case home is the root.
func newAppModel(opts Options) AppModel {
	var root screen.Screen
	if opts.StartQuiz {
		root = home.New(opts.Deps)
	} else {
		root = welcome.New(func() screen.Screen { return home.New(opts.Deps) })
	}
	m := AppModel{
		router:    router.New(root),
		deps:      opts.Deps,
		startQuiz: opts.StartQuiz,
	}
	m.refreshPlayer()
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.startQuiz {
		cmds = append(cmds, home.PlayCmd(m.deps))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if eh, ok := m.router.Active().(screen.EscapeHandler); ok && eh.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	m.refreshPlayer()
	return m, cmd
}

// refreshPlayer re-reads the current player for the header.
func (m *AppModel) refreshPlayer() {
	if m.deps.Roster == nil {
		return
	}
	m.player, m.hasPlayer = m.deps.Roster.Current(context.Background())
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var name string
	if m.hasPlayer {
		name = m.player.Name
	}
	header := layout.RenderHeader(title, name, m.player.Score, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(hp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
