package register

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/roster"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/router"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screens/play"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/state"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/store"
)

func testDeps() screen.Deps {
	repo := state.New(store.NewMemoryKV())
	return screen.Deps{Repo: repo, Roster: roster.New(repo)}
}

func typeText(s *RegisterScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func press(s *RegisterScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func fill(s *RegisterScreen, name, age string, gender rune) {
	typeText(s, name)
	press(s, tea.KeyTab)
	typeText(s, age)
	press(s, tea.KeyTab)
	s.Update(tea.KeyPressMsg{Code: gender, Text: string(gender)})
}

func TestRegister_SubmitDisabledUntilValid(t *testing.T) {
	s := New(testDeps())
	if s.Valid() {
		t.Fatal("empty form should not be valid")
	}

	typeText(s, "Ada")
	press(s, tea.KeyTab)
	typeText(s, "9")
	if s.Valid() {
		t.Fatal("age 9 is below the minimum")
	}
	typeText(s, "0")
	if s.Valid() {
		t.Fatal("gender not picked yet")
	}

	press(s, tea.KeyTab)
	s.Update(tea.KeyPressMsg{Code: 'f', Text: "f"})
	if !s.Valid() {
		t.Fatal("form should be valid once every field is filled")
	}
}

func TestRegister_AgeIgnoresLetters(t *testing.T) {
	s := New(testDeps())
	press(s, tea.KeyTab)
	typeText(s, "4x2")
	if got := s.age.Value(); got != "42" {
		t.Errorf("age = %q, want %q", got, "42")
	}
}

func TestRegister_InvalidEnterMovesFocus(t *testing.T) {
	deps := testDeps()
	s := New(deps)
	typeText(s, "Ada")
	press(s, tea.KeyEnter)
	if s.focus != fieldAge {
		t.Errorf("focus = %d, want age field", s.focus)
	}
	if _, ok := deps.Roster.Current(context.Background()); ok {
		t.Error("invalid form must not register anyone")
	}
}

func TestRegister_SubmitRegistersAndStartsQuiz(t *testing.T) {
	deps := testDeps()
	s := New(deps)
	fill(s, "  Ibn Battuta ", "33", 'm')

	cmd := press(s, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected navigation after a valid submit")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*play.PlayScreen); !ok {
		t.Errorf("expected the quiz screen, got %T", msg.Screen)
	}

	u, ok := deps.Roster.Current(context.Background())
	if !ok {
		t.Fatal("registered player should be current")
	}
	if u.Name != "Ibn Battuta" || u.Age != 33 || u.Gender != quiz.GenderMale || u.Score != 0 {
		t.Errorf("unexpected user %+v", u)
	}
}

func TestRegister_View(t *testing.T) {
	s := New(testDeps())
	view := s.View(100, 30)
	for _, want := range []string{"Name", "Age", "Gender", "START QUIZ"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
