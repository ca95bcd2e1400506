package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/questions"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/roster"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/session"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/state"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/store"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumable is implemented by screens that reload their data when they
// become active again after the screen above them is popped.
type Resumable interface {
	Resume() tea.Cmd
}

// EscapeHandler is implemented by screens that handle Esc themselves
// instead of letting the app pop them.
type EscapeHandler interface {
	HandlesEscape() bool
}

// Deps are the shared services screens read and write through.
type Deps struct {
	Repo      *state.Repo
	Roster    *roster.Roster
	Questions *questions.Service

	// Events is the session and LLM event log. Optional.
	Events store.EventRepo

	// Scope is the stats scope new quiz sessions run with.
	Scope session.Scope
}
