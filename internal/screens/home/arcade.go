package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const arcadeTitleFull = `╦ ╦╦╔═╗╔╦╗╔═╗╦═╗╦ ╦  ╦  ╦╔═╗╦ ╦╦ ╔╦╗
╠═╣║╚═╗ ║ ║ ║╠╦╝╚╦╝  ╚╗╔╝╠═╣║ ║║  ║
╩ ╩╩╚═╝ ╩ ╚═╝╩╚═ ╩    ╚╝ ╩ ╩╚═╝╩═╝╩`

const arcadeTitleCompact = "H I S T O R Y · V A U L T"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Parchment).
		Bold(true)

	if compact {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(style.Render(arcadeTitleCompact))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(arcadeTitleFull))
}

// renderStatsBar renders the player's standing in a bordered box matching content width.
func renderStatsBar(st stats, cw int, compact bool) string {
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Parchment).Bold(true)
	rankStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	badgeStyle := lipgloss.NewStyle().Foreground(theme.Sky).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var line string
	switch {
	case !st.hasPlayer:
		line = dimStyle.Render("No player yet. Pick NEW PLAYER to begin")
	case compact:
		line = fmt.Sprintf("%s %s %s",
			scoreStyle.Render(fmt.Sprintf("★%d", st.score)),
			rankStyle.Render(fmt.Sprintf("#%d", st.rank)),
			badgeStyle.Render(fmt.Sprintf("🏅%d/%d", st.unlocked, st.achievements)),
		)
	default:
		line = fmt.Sprintf("%s  %s  %s",
			scoreStyle.Render(fmt.Sprintf("★ %d POINTS", st.score)),
			rankStyle.Render(fmt.Sprintf("RANK %d OF %d", st.rank, st.players)),
			badgeStyle.Render(fmt.Sprintf("🏅 %d/%d", st.unlocked, st.achievements)),
		)
	}

	// Wrap in a double-border box at the same content width
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Sky).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Parchment).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Parchment).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	disabledBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if disabled[i] {
			buttons = append(buttons, disabledBtn.Render(label))
		} else if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		if disabled[i] {
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		} else if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Parchment).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderEmptyBanner renders a warning when the question bank is empty.
func renderEmptyBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ The vault has no questions. Add or import some from ADMIN")
}

// renderNoticeBanner lists data problems found while loading, such as a
// corrupt snapshot or a database that could not be opened.
func renderNoticeBanner(notices []string, cw int) string {
	lines := make([]string, len(notices))
	for i, n := range notices {
		lines[i] = "⚠ " + n
	}
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Error).
		Padding(0, 1).
		Width(cw).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
