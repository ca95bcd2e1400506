package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/theme"
)

const bannerArt = `
 ██╗  ██╗██╗███████╗████████╗ ██████╗ ██████╗ ██╗   ██╗
 ██║  ██║██║██╔════╝╚══██╔══╝██╔═══██╗██╔══██╗╚██╗ ██╔╝
 ███████║██║███████╗   ██║   ██║   ██║██████╔╝ ╚████╔╝
 ██╔══██║██║╚════██║   ██║   ██║   ██║██╔══██╗  ╚██╔╝
 ██║  ██║██║███████║   ██║   ╚██████╔╝██║  ██║   ██║
 ╚═╝  ╚═╝╚═╝╚══════╝   ╚═╝    ╚═════╝ ╚═╝  ╚═╝   ╚═╝
          ██╗   ██╗ █████╗ ██╗   ██╗██╗  ████████╗
          ██║   ██║██╔══██╗██║   ██║██║  ╚══██╔══╝
          ██║   ██║███████║██║   ██║██║     ██║
          ╚██╗ ██╔╝██╔══██║██║   ██║██║     ██║
           ╚████╔╝ ██║  ██║╚██████╔╝███████╗██║
            ╚═══╝  ╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚═╝`

const bannerCompact = "H I S T O R Y · V A U L T"

// RenderBanner returns the HISTORY VAULT banner in parchment.
// Terminals narrower than 58 columns get the compact line.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Parchment).
		Bold(true)

	if width < 58 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
