package play

import (
	"time"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/session"
)

// AdvanceDelay is how long answer feedback stays up before the next
// question is shown.
const AdvanceDelay = 2 * time.Second

// ToastDuration is how long an achievement toast stays up.
const ToastDuration = 5 * time.Second

// startedMsg is sent when the game has started or restarted.
type startedMsg struct {
	State session.State
	Err   error
}

// autoAdvanceMsg fires AdvanceDelay after an answer. Seq ties it to the
// answer that scheduled it so a stale tick is ignored.
type autoAdvanceMsg struct {
	Seq int
}

// toastDoneMsg hides the achievement toast scheduled with the same Seq.
type toastDoneMsg struct {
	Seq int
}
