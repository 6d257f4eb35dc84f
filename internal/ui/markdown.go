package ui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

const (
	// AutoStyle picks a dark or light style from the terminal background
	AutoStyle    = "auto"
	DefaultWidth = 80
)

// RenderMarkdown renders md for the terminal with the named glamour style
// ("auto", "dark", "light", "notty", "ascii", ...). A non-positive width
// falls back to DefaultWidth.
func RenderMarkdown(md, style string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	styleOpt := glamour.WithStandardStyle(style)
	if style == "" || style == AutoStyle {
		styleOpt = glamour.WithAutoStyle()
	}

	renderer, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
