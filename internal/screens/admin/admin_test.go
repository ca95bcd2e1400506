package admin

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/llm"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/questiongen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/questions"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/roster"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/router"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/state"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/store"
)

func testDeps(t *testing.T, opts ...questions.Option) screen.Deps {
	t.Helper()
	repo := state.New(store.NewMemoryKV())
	if err := repo.SaveQuestions(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	return screen.Deps{
		Repo:      repo,
		Roster:    roster.New(repo),
		Questions: questions.NewService(repo, opts...),
	}
}

func typeText(s *AdminScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func press(s *AdminScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

// choose moves the menu to label and selects it.
func choose(t *testing.T, s *AdminScreen, label string) {
	t.Helper()
	for i, item := range s.menu.Items {
		if item.Label == label {
			s.menu.Selected = i
			press(s, tea.KeyEnter)
			return
		}
	}
	t.Fatalf("no menu item %q", label)
}

func TestAdmin_AddQuestion(t *testing.T) {
	deps := testDeps(t)
	s := New(deps)

	choose(t, s, "Add question")
	if s.mode != modeForm {
		t.Fatalf("mode = %v, want form", s.mode)
	}
	typeText(s, "Which city did Hannibal fight for?")
	press(s, tea.KeyTab)
	typeText(s, "Rome; Carthage; Athens")
	press(s, tea.KeyTab)
	typeText(s, "Carthage")
	press(s, tea.KeyEnter)

	if s.mode != modeMenu {
		t.Fatalf("mode = %v, want menu after submit (err %q)", s.mode, s.errMsg)
	}
	qs := deps.Questions.List(context.Background())
	if len(qs) != 1 {
		t.Fatalf("bank size = %d, want 1", len(qs))
	}
	if qs[0].CorrectAnswer != "Carthage" || len(qs[0].Choices) != 3 {
		t.Errorf("unexpected question %+v", qs[0])
	}
	if s.stats.TotalQuestions != 1 {
		t.Errorf("stats not refreshed: %+v", s.stats)
	}
}

func TestAdmin_SubmitDisabledWhileInvalid(t *testing.T) {
	deps := testDeps(t)
	s := New(deps)

	choose(t, s, "Add question")
	if s.formProblem() == "" {
		t.Fatal("an empty form should not be submittable")
	}
	typeText(s, "Only one choice?")
	press(s, tea.KeyTab)
	typeText(s, "Yes")
	press(s, tea.KeyTab)
	typeText(s, "Yes")
	press(s, tea.KeyEnter)

	if s.mode != modeForm {
		t.Fatalf("mode = %v, want the form to stay open", s.mode)
	}
	if s.errMsg != "" || s.notice != "" {
		t.Errorf("disabled submit should do nothing, err=%q notice=%q", s.errMsg, s.notice)
	}
	if !strings.Contains(s.View(120, 40), "need 2 to 6 non-blank choices") {
		t.Error("view should say why saving is disabled")
	}
	if n := len(deps.Questions.List(context.Background())); n != 0 {
		t.Errorf("bank size = %d, want 0", n)
	}

	press(s, tea.KeyTab)
	s.fields[1].SetValue("Yes; No")
	if p := s.formProblem(); p != "" {
		t.Errorf("formProblem = %q once the form is valid", p)
	}
}

func TestAdmin_ListEditDelete(t *testing.T) {
	ctx := context.Background()
	deps := testDeps(t)
	q, err := deps.Questions.Add(ctx, "Who wrote the Histories?", []string{"Herodotus", "Plato"}, "Herodotus", quiz.SourceManual)
	if err != nil {
		t.Fatal(err)
	}
	s := New(deps)

	choose(t, s, "Browse questions")
	if !strings.Contains(s.View(120, 40), "Who wrote the Histories?") {
		t.Fatal("list should show the question")
	}

	s.Update(tea.KeyPressMsg{Code: 'e', Text: "e"})
	if s.mode != modeForm || s.editID != q.ID {
		t.Fatalf("expected edit form for %s, got mode %v id %q", q.ID, s.mode, s.editID)
	}
	if s.fields[1].Value() != "Herodotus; Plato" {
		t.Errorf("choices field = %q", s.fields[1].Value())
	}
	press(s, tea.KeyTab)
	press(s, tea.KeyTab)
	press(s, tea.KeyEnter)
	if s.notice != "Question updated." {
		t.Fatalf("notice = %q, err = %q", s.notice, s.errMsg)
	}

	choose(t, s, "Browse questions")
	s.Update(tea.KeyPressMsg{Code: 'd', Text: "d"})
	if !s.confirm {
		t.Fatal("d should ask for confirmation")
	}
	s.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if n := len(deps.Questions.List(ctx)); n != 0 {
		t.Errorf("bank size = %d, want 0 after delete", n)
	}
}

func TestAdmin_ImportExport(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	payload := `[
		{"text":"Who united Upper and Lower Egypt?","choices":["Narmer","Khufu"],"correctAnswer":"Narmer"},
		{"text":"Bad","choices":["A","B"],"correctAnswer":"C"}
	]`
	if err := os.WriteFile(in, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	deps := testDeps(t)
	s := New(deps)

	choose(t, s, "Import questions")
	typeText(s, in)
	press(s, tea.KeyEnter)
	if !strings.Contains(s.notice, "Imported 1") {
		t.Fatalf("notice = %q, err = %q", s.notice, s.errMsg)
	}

	out := filepath.Join(dir, "out.json")
	choose(t, s, "Export questions")
	typeText(s, out)
	press(s, tea.KeyEnter)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var recs []map[string]any
	if err := json.Unmarshal(data, &recs); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	if len(recs) != 1 || recs[0]["text"] != "Who united Upper and Lower Egypt?" {
		t.Errorf("unexpected export %s", data)
	}
	if len(deps.Questions.List(ctx)) != 1 {
		t.Error("export must not change the bank")
	}
}

func TestAdmin_ImportMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"text":"not an array"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s := New(testDeps(t))

	choose(t, s, "Import questions")
	typeText(s, path)
	press(s, tea.KeyEnter)
	if !strings.Contains(s.errMsg, "not a JSON array") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestAdmin_Generate(t *testing.T) {
	payload := json.RawMessage(`{"questions":[
		{"question_text":"Which empire built Machu Picchu?","choices":["Inca","Aztec","Maya"],"answer":"Inca","explanation":""}
	]}`)
	gen := questiongen.New(llm.NewMockProvider(llm.MockResponse{Content: payload}), questiongen.DefaultConfig())
	deps := testDeps(t, questions.WithGenerator(gen))
	s := New(deps)

	choose(t, s, "Generate questions")
	typeText(s, "Andes")
	press(s, tea.KeyTab)
	typeText(s, "1")
	cmd := press(s, tea.KeyEnter)
	if cmd == nil || !s.generating {
		t.Fatal("expected an async generation command")
	}
	s.Update(cmd())

	if s.generating {
		t.Error("generation should be finished")
	}
	if !strings.Contains(s.notice, "Added 1 generated") {
		t.Errorf("notice = %q, err = %q", s.notice, s.errMsg)
	}
	qs := deps.Questions.List(context.Background())
	if len(qs) != 1 || qs[0].Source != quiz.SourceGenerated {
		t.Errorf("bank = %+v", qs)
	}
}

func TestAdmin_GenerateProviderDown(t *testing.T) {
	gen := questiongen.New(llm.NewMockProvider(), questiongen.DefaultConfig())
	deps := testDeps(t, questions.WithGenerator(gen))
	s := New(deps)

	choose(t, s, "Generate questions")
	typeText(s, "Andes")
	press(s, tea.KeyTab)
	typeText(s, "3")
	cmd := press(s, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected an async generation command")
	}
	s.Update(cmd())

	if !strings.Contains(s.errMsg, "could not be reached") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if strings.Contains(s.errMsg, "no responses left") {
		t.Errorf("errMsg leaks the raw provider error: %q", s.errMsg)
	}
	if len(deps.Questions.List(context.Background())) != 0 {
		t.Error("bank should be unchanged")
	}
}

func TestAdmin_GenerateDisabledWithoutProvider(t *testing.T) {
	s := New(testDeps(t))
	for _, item := range s.menu.Items {
		if item.Label == "Generate questions" && !item.Disabled {
			t.Error("generate should be disabled without a generator")
		}
	}
}

func TestAdmin_ResetLeaderboard(t *testing.T) {
	ctx := context.Background()
	deps := testDeps(t)
	if _, err := deps.Roster.Register(ctx, "Ptolemy", 60, quiz.GenderMale); err != nil {
		t.Fatal(err)
	}
	s := New(deps)

	choose(t, s, "Reset leaderboard")
	s.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})

	if len(deps.Roster.Users(ctx)) != 0 {
		t.Error("roster should be empty")
	}
	if _, ok := deps.Roster.Current(ctx); ok {
		t.Error("current user should be cleared")
	}
	if s.mode != modeMenu || s.notice != "Leaderboard reset." {
		t.Errorf("mode = %v notice = %q", s.mode, s.notice)
	}
}

func TestAdmin_PinGate(t *testing.T) {
	ctx := context.Background()
	deps := testDeps(t)
	if err := deps.Roster.SetPin(ctx, "1453"); err != nil {
		t.Fatal(err)
	}

	s := New(deps)
	if s.mode != modeLocked {
		t.Fatal("admin should start locked when a passcode is set")
	}
	if strings.Contains(s.View(100, 30), "1453") {
		t.Error("passcode must not be echoed")
	}

	typeText(s, "0000")
	press(s, tea.KeyEnter)
	if s.mode != modeLocked || s.errMsg == "" {
		t.Fatal("wrong passcode should keep the screen locked")
	}

	typeText(s, "1453")
	press(s, tea.KeyEnter)
	if s.mode != modeMenu {
		t.Errorf("mode = %v, want menu after unlocking", s.mode)
	}
}

func TestAdmin_SetPin(t *testing.T) {
	ctx := context.Background()
	deps := testDeps(t)
	s := New(deps)

	choose(t, s, "Set passcode")
	typeText(s, "1066")
	press(s, tea.KeyTab)
	typeText(s, "1067")
	press(s, tea.KeyEnter)
	if s.mode != modeSetPin || s.formProblem() != "Passcodes do not match." {
		t.Fatalf("mode = %v, formProblem = %q", s.mode, s.formProblem())
	}
	if deps.Roster.HasPin(ctx) {
		t.Fatal("mismatched passcodes must not be saved")
	}

	press(s, tea.KeyTab)
	s.fields[1].SetValue("1066")
	press(s, tea.KeyTab)
	press(s, tea.KeyEnter)
	if err := deps.Roster.CheckPin(ctx, "1066"); err != nil {
		t.Errorf("CheckPin: %v", err)
	}
}

func TestAdmin_EscNavigation(t *testing.T) {
	s := New(testDeps(t))

	choose(t, s, "Add question")
	press(s, tea.KeyEscape)
	if s.mode != modeMenu {
		t.Fatalf("esc in a form should return to the menu, got %v", s.mode)
	}

	cmd := press(s, tea.KeyEscape)
	if cmd == nil {
		t.Fatal("esc on the menu should leave the screen")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
