package home

import (
	"charm.land/lipgloss/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/theme"
)

// MascotVariant selects which owl to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Amber owl
	MascotCelebrating                      // Gold, star eyes: player tops the leaderboard
	MascotAlert                            // Orange, exclamation: the vault is empty
)

const mascotIdle = ` ,___,
 (◉,◉)
 /)_)
──"─"──`

const mascotCelebrating = ` ,___,
 (★,★)
 /)_) ♪
──"─"──`

const mascotAlert = ` ,___,
 (◉,◉) !
 /)_)
──"─"──`

// RenderMascot returns the owl art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Parchment
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
