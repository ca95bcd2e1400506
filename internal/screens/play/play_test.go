package play

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/game"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/roster"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/router"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screens/summary"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/session"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/shuffle"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/state"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/store"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time       { return c.t }
func (c *clock) Tick(d time.Duration) { c.t = c.t.Add(d) }

func testDeps(t *testing.T, n int, register bool) screen.Deps {
	t.Helper()
	ctx := context.Background()

	st, err := store.Open(filepath.Join(t.TempDir(), "play.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	repo := state.New(st.KV())
	qs := make([]quiz.Question, 0, n)
	for i := 0; i < n; i++ {
		q, err := quiz.NewQuestion(
			"Who founded the Mongol Empire? #"+string(rune('1'+i)),
			[]string{"Genghis Khan", "Kublai Khan", "Tamerlane"},
			"Genghis Khan",
			quiz.SourceManual,
		)
		if err != nil {
			t.Fatalf("new question: %v", err)
		}
		qs = append(qs, q)
	}
	if err := repo.SaveQuestions(ctx, qs); err != nil {
		t.Fatalf("save questions: %v", err)
	}

	r := roster.New(repo)
	if register {
		if _, err := r.Register(ctx, "Omar", 30, quiz.GenderMale); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	return screen.Deps{Repo: repo, Roster: r, Events: st.EventRepo()}
}

// started builds a play screen and delivers its start message.
func started(t *testing.T, deps screen.Deps, c *clock) *PlayScreen {
	t.Helper()
	s := New(deps,
		game.WithShuffler(shuffle.NewSeeded(3)),
		game.WithEngineOptions(session.WithClock(c.Now)),
	)
	s.Update(s.Init()())
	return s
}

func newClock() *clock {
	return &clock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// keyFor returns the number key that picks choice.
func keyFor(t *testing.T, s *PlayScreen, choice string) tea.KeyPressMsg {
	t.Helper()
	i := slices.Index(s.mc.Options, choice)
	if i < 0 {
		t.Fatalf("choice %q not on screen: %v", choice, s.mc.Options)
	}
	return key(rune('1' + i))
}

func TestPlayScreen_StartShowsFirstQuestion(t *testing.T) {
	s := started(t, testDeps(t, 2, true), newClock())

	if !s.playing() {
		t.Fatalf("expected a question on screen, errMsg=%q", s.errMsg)
	}
	if s.state.Total != 2 || s.state.Index != 0 {
		t.Errorf("state = %+v, want index 0 of 2", s.state)
	}
	if len(s.mc.Options) != 3 {
		t.Errorf("expected 3 options, got %d", len(s.mc.Options))
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Question 1 of 2") {
		t.Error("view missing progress line")
	}
	if !strings.Contains(view, "50%") {
		t.Error("view missing progress percentage")
	}
}

func TestPlayScreen_CorrectAnswerScoresAndToasts(t *testing.T) {
	c := newClock()
	s := started(t, testDeps(t, 2, true), c)

	c.Tick(2 * time.Second)
	_, cmd := s.Update(keyFor(t, s, "Genghis Khan"))
	if cmd == nil {
		t.Fatal("expected tick commands after answering")
	}
	if s.outcome == nil || !s.outcome.Correct {
		t.Fatalf("expected a correct outcome, got %+v", s.outcome)
	}
	if s.outcome.Points != session.FastAnswerPoints {
		t.Errorf("points = %d, want %d", s.outcome.Points, session.FastAnswerPoints)
	}
	if len(s.toast) == 0 {
		t.Error("expected an achievement toast for the first correct answer")
	}
	if !strings.Contains(s.View(100, 30), "Correct!") {
		t.Error("view missing feedback")
	}
}

func TestPlayScreen_WrongAnswerShowsCorrectOne(t *testing.T) {
	c := newClock()
	s := started(t, testDeps(t, 1, true), c)

	c.Tick(12 * time.Second)
	s.Update(keyFor(t, s, "Tamerlane"))
	if s.outcome == nil || s.outcome.Correct {
		t.Fatalf("expected a wrong outcome, got %+v", s.outcome)
	}
	if !strings.Contains(s.View(100, 30), "Genghis Khan") {
		t.Error("feedback should name the correct answer")
	}
}

func TestPlayScreen_AutoAdvance(t *testing.T) {
	s := started(t, testDeps(t, 2, true), newClock())

	s.Update(keyFor(t, s, "Genghis Khan"))
	stale := autoAdvanceMsg{Seq: s.seq - 1}
	s.Update(stale)
	if s.state.Index != 0 {
		t.Fatal("stale tick should not advance")
	}

	s.Update(autoAdvanceMsg{Seq: s.seq})
	if s.state.Index != 1 {
		t.Errorf("expected question 2, got index %d", s.state.Index)
	}
	if s.outcome != nil {
		t.Error("outcome should be cleared after advancing")
	}
}

func TestPlayScreen_AnyKeyAdvancesAndCancelsTick(t *testing.T) {
	s := started(t, testDeps(t, 3, true), newClock())

	s.Update(keyFor(t, s, "Genghis Khan"))
	pending := autoAdvanceMsg{Seq: s.seq}
	s.Update(key('x'))
	if s.state.Index != 1 {
		t.Fatalf("expected question 2, got index %d", s.state.Index)
	}

	s.Update(pending)
	if s.state.Index != 1 {
		t.Error("tick from an earlier answer must not skip a question")
	}
}

func TestPlayScreen_CompletionOpensSummary(t *testing.T) {
	s := started(t, testDeps(t, 1, true), newClock())

	s.Update(keyFor(t, s, "Genghis Khan"))
	_, cmd := s.Update(key(' '))
	if cmd == nil {
		t.Fatal("expected navigation to the summary")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", msg.Screen)
	}
}

func TestPlayScreen_RetryReplaysPool(t *testing.T) {
	deps := testDeps(t, 1, true)
	s := started(t, deps, newClock())

	s.Update(keyFor(t, s, "Genghis Khan"))
	_, cmd := s.Update(key(' '))
	sum := cmd().(router.ReplaceScreenMsg).Screen

	_, cmd = sum.Update(key('r'))
	if cmd == nil {
		t.Fatal("expected retry command")
	}
	next, ok := cmd().(router.ReplaceScreenMsg).Screen.(*PlayScreen)
	if !ok {
		t.Fatal("retry should open a play screen")
	}
	next.Update(next.Init()())
	if !next.playing() || next.state.Index != 0 {
		t.Errorf("expected a fresh session, got %+v", next.state)
	}

	u, _ := deps.Roster.Current(context.Background())
	if u.Score != session.FastAnswerPoints {
		t.Errorf("score should carry into the retry, got %d", u.Score)
	}
}

func TestPlayScreen_QuitConfirm(t *testing.T) {
	s := started(t, testDeps(t, 2, true), newClock())

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !s.quitConfirm {
		t.Fatal("esc should ask before quitting")
	}
	s.Update(key('n'))
	if s.quitConfirm {
		t.Fatal("n should cancel the quit")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := s.Update(key('y'))
	if cmd == nil {
		t.Fatal("y should leave the quiz")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestPlayScreen_NoPlayer(t *testing.T) {
	s := started(t, testDeps(t, 2, false), newClock())

	if s.errMsg == "" {
		t.Fatal("expected an error without a registered player")
	}
	if !strings.Contains(s.View(100, 30), "Register a player") {
		t.Error("view should ask for registration")
	}
	_, cmd := s.Update(key('a'))
	if cmd == nil {
		t.Error("any key should go back")
	}
}

func TestPlayScreen_EmptyBank(t *testing.T) {
	s := started(t, testDeps(t, 0, true), newClock())

	if s.state.Phase != session.PhaseEmpty {
		t.Fatalf("phase = %v, want empty", s.state.Phase)
	}
	if !strings.Contains(s.View(100, 30), "no questions") {
		t.Error("view should say the vault is empty")
	}
}

func TestPlayScreen_ToastExpires(t *testing.T) {
	s := started(t, testDeps(t, 2, true), newClock())

	s.Update(keyFor(t, s, "Genghis Khan"))
	if len(s.toast) == 0 {
		t.Fatal("expected a toast")
	}
	s.Update(toastDoneMsg{Seq: s.toastSeq - 1})
	if len(s.toast) == 0 {
		t.Fatal("stale toast timer should not hide the toast")
	}
	s.Update(toastDoneMsg{Seq: s.toastSeq})
	if len(s.toast) != 0 {
		t.Error("toast should hide after its timer")
	}
}

func TestPlayScreen_HandlesEscape(t *testing.T) {
	var s screen.Screen = New(testDeps(t, 1, true))
	if eh, ok := s.(screen.EscapeHandler); !ok || !eh.HandlesEscape() {
		t.Error("play screen should handle esc itself")
	}
}
