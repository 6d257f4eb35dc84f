// Package format renders query results and errors as text for transports.
//
// Two modes are supported: structured output is indented JSON with stable
// snake_case field names, narrative output is Markdown meant for people and
// language models. Rendering never touches the filesystem, so formatting the
// same result twice yields identical text.
package format

import (
	"strings"

	"docscan/internal/domain"
)

// Mode selects the output representation.
type Mode string

const (
	Narrative  Mode = "narrative"
	Structured Mode = "structured"
)

// ParseMode accepts narrative, structured and their aliases markdown and
// json, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "narrative", "markdown", "md":
		return Narrative, nil
	case "structured", "json":
		return Structured, nil
	default:
		return "", domain.NewInvalidArgument("response_format", "must be one of narrative, structured (got %q)", s)
	}
}

// ParseModeOr is ParseMode with a fallback for the empty string.
func ParseModeOr(s string, fallback Mode) (Mode, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	return ParseMode(s)
}
