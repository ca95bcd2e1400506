// Package admin is the question bank and roster management screen. It is
// guarded by the admin passcode when one is set.
package admin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/llm"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/questiongen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/questions"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/roster"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/router"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/components"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/layout"
)

// GenerateTimeout bounds one generation request.
const GenerateTimeout = 2 * time.Minute

type mode int

const (
	modeLocked mode = iota
	modeMenu
	modeList
	modeForm
	modeImport
	modeExport
	modeGenerate
	modeSetPin
	modeConfirmReset
)

type generatedMsg struct {
	Result questiongen.Result
	Err    error
}

// AdminScreen manages questions, the roster and the passcode.
type AdminScreen struct {
	deps screen.Deps
	mode mode

	menu     components.Menu
	stats    roster.AppStats
	bank     []quiz.Question
	selected int
	confirm  bool // delete confirmation in the list

	pin    components.TextInput
	fields []components.TextInput
	focus  int
	editID string

	generating bool

	notice string
	errMsg string
}

var _ screen.Screen = (*AdminScreen)(nil)
var _ screen.KeyHintProvider = (*AdminScreen)(nil)
var _ screen.EscapeHandler = (*AdminScreen)(nil)

// New creates the admin screen. It starts locked when a passcode is set.
func New(deps screen.Deps) *AdminScreen {
	s := &AdminScreen{deps: deps, mode: modeMenu}
	s.menu = components.NewMenu(s.menuItems())
	if deps.Roster.HasPin(context.Background()) {
		s.mode = modeLocked
		s.pin = components.NewPasswordInput("passcode", roster.MaxPinLen)
	}
	s.refresh()
	return s
}

func (s *AdminScreen) menuItems() []components.MenuItem {
	goTo := func(m mode) func() tea.Cmd {
		return func() tea.Cmd { return s.enter(m) }
	}
	return []components.MenuItem{
		{Label: "Browse questions", Action: goTo(modeList)},
		{Label: "Add question", Action: goTo(modeForm)},
		{Label: "Import questions", Action: goTo(modeImport)},
		{Label: "Export questions", Action: goTo(modeExport)},
		{Label: "Generate questions", Action: goTo(modeGenerate), Disabled: !s.deps.Questions.CanGenerate()},
		{Label: "Set passcode", Action: goTo(modeSetPin)},
		{Label: "Reset leaderboard", Action: goTo(modeConfirmReset)},
		{Label: "Back", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}},
	}
}

// refresh reloads the bank and the stats panel.
func (s *AdminScreen) refresh() {
	ctx := context.Background()
	s.bank = s.deps.Questions.List(ctx)
	s.stats = s.deps.Roster.Stats(ctx)
	if s.selected >= len(s.bank) {
		s.selected = max(len(s.bank)-1, 0)
	}
}

func (s *AdminScreen) Init() tea.Cmd {
	if s.mode == modeLocked {
		return s.pin.Init()
	}
	return nil
}

func (s *AdminScreen) Title() string {
	return "Admin"
}

func (s *AdminScreen) HandlesEscape() bool {
	return true
}

func (s *AdminScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeLocked:
		return []layout.KeyHint{{Key: "Enter", Description: "Unlock"}, {Key: "Esc", Description: "Back"}}
	case modeMenu:
		return []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Select"}, {Key: "Esc", Description: "Back"}}
	case modeList:
		return []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "E", Description: "Edit"}, {Key: "D", Description: "Delete"}, {Key: "Esc", Description: "Menu"}}
	case modeConfirmReset:
		return []layout.KeyHint{{Key: "Y", Description: "Reset"}, {Key: "N", Description: "Cancel"}}
	}
	return []layout.KeyHint{{Key: "Tab", Description: "Next field"}, {Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Menu"}}
}

// enter switches to mode m and prepares its inputs.
func (s *AdminScreen) enter(m mode) tea.Cmd {
	s.mode = m
	s.errMsg = ""
	s.confirm = false
	s.focus = 0
	s.editID = ""

	switch m {
	case modeForm:
		s.fields = []components.TextInput{
			components.NewTextInput("question text", false, 300),
			components.NewTextInput("choices separated by "+questions.ChoiceSeparator, false, 600),
			components.NewTextInput("correct answer", false, 120),
		}
	case modeImport:
		s.fields = []components.TextInput{components.NewTextInput("path to a JSON file", false, 0)}
	case modeExport:
		s.fields = []components.TextInput{components.NewTextInput("history-vault-questions.json", false, 0)}
	case modeGenerate:
		s.fields = []components.TextInput{
			components.NewTextInput("topic, e.g. the Silk Road", false, 120),
			components.NewTextInput(strconv.Itoa(questiongen.MaxCount), true, 2),
		}
	case modeSetPin:
		s.fields = []components.TextInput{
			components.NewPasswordInput("new passcode", roster.MaxPinLen),
			components.NewPasswordInput("repeat passcode", roster.MaxPinLen),
		}
	default:
		s.fields = nil
		return nil
	}
	for i := 1; i < len(s.fields); i++ {
		s.fields[i].Blur()
	}
	return s.fields[0].Init()
}

func (s *AdminScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return s.handleGenerated(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, s.updateField(msg)
}

func (s *AdminScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.mode {
	case modeLocked:
		switch key {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			if err := s.deps.Roster.CheckPin(context.Background(), s.pin.Value()); err != nil {
				s.errMsg = "Wrong passcode."
				s.pin.Reset()
				return s, nil
			}
			s.errMsg = ""
			s.mode = modeMenu
			return s, nil
		}
		var cmd tea.Cmd
		s.pin, cmd = s.pin.Update(msg)
		return s, cmd

	case modeMenu:
		if key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.notice = ""
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd

	case modeList:
		return s.handleListKey(key)

	case modeConfirmReset:
		switch key {
		case "y", "Y":
			s.resetLeaderboard()
			s.mode = modeMenu
		case "n", "N", "esc":
			s.mode = modeMenu
		}
		return s, nil
	}

	// Form modes.
	switch key {
	case "esc":
		if s.generating {
			return s, nil
		}
		s.enter(modeMenu)
		return s, nil
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % len(s.fields))
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + len(s.fields) - 1) % len(s.fields))
	case "enter":
		if s.focus < len(s.fields)-1 {
			return s, s.setFocus(s.focus + 1)
		}
		if s.formProblem() != "" {
			return s, nil
		}
		return s, s.submit()
	}
	return s, s.updateField(msg)
}

// formProblem is why the open form cannot be submitted yet. Submission is
// disabled while it is non-empty.
func (s *AdminScreen) formProblem() string {
	switch s.mode {
	case modeForm:
		_, err := quiz.NewQuestion(s.fields[0].Value(), questions.SplitChoices(s.fields[1].Value()),
			s.fields[2].Value(), quiz.SourceManual)
		if err != nil {
			return err.Error()
		}
	case modeImport:
		if strings.TrimSpace(s.fields[0].Value()) == "" {
			return "Enter the file to import."
		}
	case modeGenerate:
		if v := strings.TrimSpace(s.fields[1].Value()); v != "" {
			if n, err := strconv.Atoi(v); err != nil || n < 1 || n > questiongen.MaxCount {
				return fmt.Sprintf("Ask for 1 to %d questions.", questiongen.MaxCount)
			}
		}
	case modeSetPin:
		pin, again := s.fields[0].Value(), s.fields[1].Value()
		if n := utf8.RuneCountInString(pin); n < roster.MinPinLen || n > roster.MaxPinLen {
			return fmt.Sprintf("Passcode must be %d to %d characters.", roster.MinPinLen, roster.MaxPinLen)
		}
		if pin != again {
			return "Passcodes do not match."
		}
	}
	return ""
}

func (s *AdminScreen) handleListKey(key string) (screen.Screen, tea.Cmd) {
	if s.confirm {
		switch key {
		case "y", "Y":
			s.deleteSelected()
		}
		s.confirm = false
		return s, nil
	}

	switch key {
	case "esc":
		s.enter(modeMenu)
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.bank)-1 {
			s.selected++
		}
	case "d", "D", "delete":
		if len(s.bank) > 0 {
			s.confirm = true
		}
	case "e", "E", "enter":
		if len(s.bank) > 0 {
			q := s.bank[s.selected]
			cmd := s.enter(modeForm)
			s.editID = q.ID
			s.fields[0].SetValue(q.Text)
			s.fields[1].SetValue(strings.Join(q.Choices, questions.ChoiceSeparator+" "))
			s.fields[2].SetValue(q.CorrectAnswer)
			return s, cmd
		}
	}
	return s, nil
}

func (s *AdminScreen) setFocus(f int) tea.Cmd {
	s.focus = f
	for i := range s.fields {
		s.fields[i].Blur()
	}
	return s.fields[f].Focus()
}

func (s *AdminScreen) updateField(msg tea.Msg) tea.Cmd {
	if s.mode == modeLocked {
		var cmd tea.Cmd
		s.pin, cmd = s.pin.Update(msg)
		return cmd
	}
	if s.focus >= len(s.fields) {
		return nil
	}
	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return cmd
}

func (s *AdminScreen) submit() tea.Cmd {
	ctx := context.Background()
	s.errMsg = ""

	switch s.mode {
	case modeForm:
		text := s.fields[0].Value()
		choices := questions.SplitChoices(s.fields[1].Value())
		correct := s.fields[2].Value()
		var err error
		if s.editID != "" {
			_, err = s.deps.Questions.Edit(ctx, s.editID, text, choices, correct)
		} else {
			_, err = s.deps.Questions.Add(ctx, text, choices, correct, quiz.SourceManual)
		}
		if err != nil {
			s.errMsg = err.Error()
			return nil
		}
		if s.editID != "" {
			s.notice = "Question updated."
		} else {
			s.notice = "Question added."
		}

	case modeImport:
		res, err := s.importFile(ctx, s.fields[0].Value())
		if err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.notice = fmt.Sprintf("Imported %d questions, skipped %d invalid records.", res.Accepted, res.Dropped)

	case modeExport:
		path := strings.TrimSpace(s.fields[0].Value())
		if path == "" {
			path = "history-vault-questions.json"
		}
		if err := s.exportFile(ctx, path); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.notice = "Exported the question bank to " + path

	case modeGenerate:
		return s.generate()

	case modeSetPin:
		if err := s.deps.Roster.SetPin(ctx, s.fields[0].Value()); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.notice = "Passcode set."
	}

	s.refresh()
	s.enter(modeMenu)
	return nil
}

func (s *AdminScreen) importFile(ctx context.Context, path string) (questions.ImportResult, error) {
	f, err := os.Open(strings.TrimSpace(path))
	if err != nil {
		return questions.ImportResult{}, err
	}
	defer f.Close()
	res, err := s.deps.Questions.Import(ctx, f)
	if errors.Is(err, questions.ErrMalformedImport) {
		return res, fmt.Errorf("%s is not a JSON array of questions", path)
	}
	return res, err
}

func (s *AdminScreen) exportFile(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.deps.Questions.Export(ctx, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *AdminScreen) generate() tea.Cmd {
	if s.generating {
		return nil
	}
	topic := strings.TrimSpace(s.fields[0].Value())
	n := questiongen.MaxCount
	if v, err := s.fields[1].NumericValue(); err == nil {
		n = v
	}
	s.generating = true
	svc := s.deps.Questions
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), GenerateTimeout)
		defer cancel()
		res, err := svc.Generate(ctx, topic, n)
		return generatedMsg{Result: res, Err: err}
	}
}

func (s *AdminScreen) handleGenerated(msg generatedMsg) (screen.Screen, tea.Cmd) {
	s.generating = false
	if msg.Err != nil {
		s.errMsg = "Generation failed. " + llm.Explain(msg.Err)
		return s, nil
	}
	s.notice = fmt.Sprintf("Added %d generated questions (%d rejected).",
		len(msg.Result.Questions), len(msg.Result.Rejected))
	s.refresh()
	s.enter(modeMenu)
	return s, nil
}

func (s *AdminScreen) deleteSelected() {
	if s.selected >= len(s.bank) {
		return
	}
	if err := s.deps.Questions.Delete(context.Background(), s.bank[s.selected].ID); err != nil {
		s.errMsg = err.Error()
		return
	}
	s.notice = "Question deleted."
	s.refresh()
}

func (s *AdminScreen) resetLeaderboard() {
	ctx := context.Background()
	if err := s.deps.Roster.ResetAll(ctx); err != nil {
		s.errMsg = err.Error()
		return
	}
	if s.deps.Events != nil {
		if err := s.deps.Events.DeleteSessionEvents(ctx); err != nil {
			s.errMsg = err.Error()
			return
		}
	}
	s.notice = "Leaderboard reset."
	s.refresh()
}
