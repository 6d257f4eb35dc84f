// Package ui holds terminal presentation helpers for the CLI: Markdown
// rendering with glamour and Lip Gloss styles. Nothing here is used by the
// MCP server, whose stdout must stay plain.
package ui

import (
	"docscan/internal/privacy"

	"github.com/charmbracelet/lipgloss"
)

// Centralized Lip Gloss styles. All colors are specified using hex codes.
var (
	badgeBase = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	tierBadgeStyles = map[privacy.Tier]lipgloss.Style{
		privacy.Public:       badgeBase.Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#00ff5f")),
		privacy.Sensitive:    badgeBase.Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#ffd75f")),
		privacy.Confidential: badgeBase.Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#ff005f")),
	}

	MarkerStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("#a8a8a8"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff005f")).
			Bold(true)
)

// TierBadge renders the upper-case tier name as a colored badge. Without a
// color terminal it degrades to the padded name.
func TierBadge(t privacy.Tier) string {
	style, ok := tierBadgeStyles[t]
	if !ok {
		style = badgeBase
	}
	return style.Render(t.Badge())
}
