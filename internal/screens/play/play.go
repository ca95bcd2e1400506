// Package play is the quiz screen. It hosts a game.Game for the current
// player: it renders the question, forwards the chosen option, shows the
// result and moves on after AdvanceDelay or on any key.
package play

import (
	"context"
	"errors"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/achievements"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/game"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/roster"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/router"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screens/summary"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/session"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/components"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/layout"
)

// PlayScreen runs one quiz session.
type PlayScreen struct {
	game  *game.Game
	start func(context.Context) (session.State, error)

	state   session.State
	started bool
	mc      components.MultiChoice
	outcome *game.Outcome
	earned  []achievements.Achievement

	toast    []achievements.Achievement
	toastSeq int
	seq      int

	quitConfirm bool
	errMsg      string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.EscapeHandler = (*PlayScreen)(nil)

// New creates a quiz screen for the current player. Extra options go to
// game.New after the stats scope from deps.
func New(deps screen.Deps, opts ...game.Option) *PlayScreen {
	g := game.New(game.Deps{
		Repo:   deps.Repo,
		Roster: deps.Roster,
		Events: deps.Events,
	}, append([]game.Option{game.WithScope(deps.Scope)}, opts...)...)
	return &PlayScreen{game: g, start: g.Start}
}

// retry returns a fresh screen that replays g.
func retry(g *game.Game) *PlayScreen {
	return &PlayScreen{game: g, start: g.Retry}
}

func (s *PlayScreen) Init() tea.Cmd {
	start := s.start
	return func() tea.Msg {
		st, err := start(context.Background())
		return startedMsg{State: st, Err: err}
	}
}

func (s *PlayScreen) Title() string {
	return "Quiz"
}

func (s *PlayScreen) HandlesEscape() bool {
	return true
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit quiz"},
			{Key: "N", Description: "Keep playing"},
		}
	case s.outcome != nil:
		return []layout.KeyHint{
			{Key: "Any key", Description: "Next"},
		}
	case !s.playing():
		return []layout.KeyHint{
			{Key: "Any key", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-6", Description: "Answer"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

// playing reports whether a question is on screen.
func (s *PlayScreen) playing() bool {
	return s.errMsg == "" && s.started && s.state.Phase == session.PhaseInProgress
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		return s.handleStarted(msg)

	case autoAdvanceMsg:
		if msg.Seq != s.seq || s.outcome == nil {
			return s, nil
		}
		return s.advance()

	case toastDoneMsg:
		if msg.Seq == s.toastSeq {
			s.toast = nil
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayScreen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	s.started = true
	if msg.Err != nil {
		if errors.Is(msg.Err, roster.ErrNoCurrentUser) {
			s.errMsg = "Register a player before starting a quiz."
		} else {
			s.errMsg = msg.Err.Error()
		}
		return s, nil
	}
	s.state = msg.State
	s.outcome = nil
	s.earned = nil
	s.loadQuestion()
	return s, nil
}

// loadQuestion resets the option picker for the engine's current question.
func (s *PlayScreen) loadQuestion() {
	q, ok := s.game.Engine().Current()
	if !ok {
		return
	}
	s.mc = components.NewMultiChoice(q.Text, q.Choices, slices.Index(q.Choices, q.CorrectAnswer))
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Nothing to play: any key goes back.
	if !s.playing() {
		if !s.started {
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			if err := s.game.Abandon(context.Background()); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	// Result on screen: any key moves on.
	if s.outcome != nil {
		return s.advance()
	}

	if key == "esc" {
		s.quitConfirm = true
		return s, nil
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	if !s.mc.Submitted {
		return s, cmd
	}
	return s.answer(s.mc.Options[s.mc.ChosenIndex])
}

func (s *PlayScreen) answer(choice string) (screen.Screen, tea.Cmd) {
	out, ok, err := s.game.Answer(context.Background(), choice)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	if !ok {
		return s, nil
	}
	s.outcome = &out
	s.state = s.game.Engine().State()

	s.seq++
	seq := s.seq
	cmds := []tea.Cmd{tea.Tick(AdvanceDelay, func(time.Time) tea.Msg {
		return autoAdvanceMsg{Seq: seq}
	})}

	if len(out.Unlocked) > 0 {
		s.earned = append(s.earned, out.Unlocked...)
		s.toast = out.Unlocked
		s.toastSeq++
		toastSeq := s.toastSeq
		cmds = append(cmds, tea.Tick(ToastDuration, func(time.Time) tea.Msg {
			return toastDoneMsg{Seq: toastSeq}
		}))
	}
	return s, tea.Batch(cmds...)
}

func (s *PlayScreen) advance() (screen.Screen, tea.Cmd) {
	st, err := s.game.Advance(context.Background())
	s.outcome = nil
	s.seq++
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.state = st

	if st.Phase == session.PhaseCompleted {
		g := s.game
		sum := summary.New(g.Engine().Summary(), s.earned, func() tea.Cmd {
			return func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: retry(g)}
			}
		})
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} }
	}

	s.loadQuestion()
	return s, nil
}
