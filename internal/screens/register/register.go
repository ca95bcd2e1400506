// Package register is the player registration form.
package register

import (
	"context"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/router"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screens/play"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/components"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/layout"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/theme"
)

// Form fields in focus order.
const (
	fieldName = iota
	fieldAge
	fieldGender
	fieldSubmit
	fieldCount
)

const maxNameLen = 40

var genders = []quiz.Gender{quiz.GenderMale, quiz.GenderFemale}

// RegisterScreen collects a new player's name, age and gender.
type RegisterScreen struct {
	deps   screen.Deps
	name   components.TextInput
	age    components.TextInput
	gender int // index into genders, -1 until picked
	focus  int
	errMsg string
}

var _ screen.Screen = (*RegisterScreen)(nil)
var _ screen.KeyHintProvider = (*RegisterScreen)(nil)

// New creates an empty registration form.
func New(deps screen.Deps) *RegisterScreen {
	age := components.NewTextInput("age", true, 3)
	age.Blur()
	return &RegisterScreen{
		deps:   deps,
		name:   components.NewTextInput("your name", false, maxNameLen),
		age:    age,
		gender: -1,
	}
}

func (s *RegisterScreen) Init() tea.Cmd {
	return s.name.Init()
}

func (s *RegisterScreen) Title() string {
	return "New Player"
}

func (s *RegisterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Gender"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// input is the parsed form.
type input struct {
	name   string
	age    int
	gender quiz.Gender
}

// parse reads the form; the bool is false until every field is valid.
func (s *RegisterScreen) parse() (input, bool) {
	in := input{name: strings.TrimSpace(s.name.Value())}
	age, err := s.age.NumericValue()
	if err != nil {
		return in, false
	}
	in.age = age
	if s.gender >= 0 {
		in.gender = genders[s.gender]
	}
	ok := in.name != "" && age >= quiz.MinAge && age <= quiz.MaxAge && s.gender >= 0
	return in, ok
}

// Valid reports whether the submit button is enabled.
func (s *RegisterScreen) Valid() bool {
	_, ok := s.parse()
	return ok
}

func (s *RegisterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, s.updateFocused(msg)
	}

	switch kmsg.String() {
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if s.focus == fieldSubmit || s.Valid() {
			return s, s.submit()
		}
		return s, s.setFocus(s.focus + 1)
	}

	if s.focus == fieldGender {
		switch kmsg.String() {
		case "left", "m", "M":
			s.gender = 0
		case "right", "f", "F":
			s.gender = 1
		case "space":
			s.gender = (s.gender + 1) % len(genders)
		}
		return s, nil
	}

	return s, s.updateFocused(msg)
}

func (s *RegisterScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldName:
		s.name, cmd = s.name.Update(msg)
	case fieldAge:
		s.age, cmd = s.age.Update(msg)
	}
	return cmd
}

func (s *RegisterScreen) setFocus(f int) tea.Cmd {
	s.focus = f
	s.name.Blur()
	s.age.Blur()
	switch f {
	case fieldName:
		return s.name.Focus()
	case fieldAge:
		return s.age.Focus()
	}
	return nil
}

func (s *RegisterScreen) submit() tea.Cmd {
	in, ok := s.parse()
	if !ok {
		s.errMsg = "Fill in a name, an age between 10 and 100 and a gender."
		return nil
	}
	if _, err := s.deps.Roster.Register(context.Background(), in.name, in.age, in.gender); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	next := play.New(s.deps)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *RegisterScreen) View(width, height int) string {
	label := func(text string, f int) string {
		style := lipgloss.NewStyle().Foreground(theme.TextDim).Width(10)
		if s.focus == f {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		return style.Render(text)
	}

	var genderOpts []string
	for i, g := range genders {
		text := strings.ToUpper(string(g[:1])) + string(g[1:])
		style := lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)
		if i == s.gender {
			style = style.Foreground(theme.BgDark).Background(theme.Parchment).Bold(true)
		}
		genderOpts = append(genderOpts, style.Render(text))
	}

	rows := []string{
		label("Name", fieldName) + s.name.View(),
		label("Age", fieldAge) + s.age.View(),
		label("Gender", fieldGender) + strings.Join(genderOpts, "  "),
	}

	cw := components.ContentWidth(width)
	form := components.ArcadeCard(lipgloss.NewStyle().Align(lipgloss.Left).Render(strings.Join(rows, "\n\n")), cw)

	var btn string
	if s.Valid() {
		btn = components.ArcadeButton("START QUIZ", s.focus == fieldSubmit, 22)
	} else {
		btn = lipgloss.NewStyle().
			Width(22).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1).
			Render("START QUIZ")
	}

	sections := []string{
		theme.Title.Render("Join the vault"),
		theme.Subtitle.Render("Ages " + strconv.Itoa(quiz.MinAge) + " to " + strconv.Itoa(quiz.MaxAge)),
		form,
		btn,
	}
	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
