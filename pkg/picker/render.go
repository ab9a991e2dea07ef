package picker

import (
	"fmt"

	"github.com/jingkaihe/agentos/pkg/skills"
)

const (
	// MaxDescriptionWidth is the number of characters of a description shown in the menu
	MaxDescriptionWidth = 60

	ellipsis = "..."

	headerLines = 2
	footerLines = 3
)

// Truncate shortens s to at most width characters, replacing the tail with
// "..." when it had to cut.
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= len(ellipsis) {
		return string(runes[:width])
	}
	return string(runes[:width-len(ellipsis)]) + ellipsis
}

// Marker returns the checkbox for a selection flag
func Marker(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}

// EntryLine renders one numbered menu entry; i is 0-based.
func EntryLine(i int, b skills.Bundle, selected bool) string {
	line := fmt.Sprintf("  %s %d. %s", Marker(selected), i+1, b.Name)
	if b.Description != "" {
		line += " - " + Truncate(b.Description, MaxDescriptionWidth)
	}
	return line
}

// Render returns the menu for registry and state. It always has
// len(registry) numbered entries plus a fixed header and footer; the last
// line is the input prompt and carries no trailing newline when written.
func Render(registry skills.Registry, s State) []string {
	lines := make([]string, 0, len(registry)+headerLines+footerLines)
	lines = append(lines, "Select skills to import:", "")

	for i, b := range registry {
		lines = append(lines, EntryLine(i, b, s.IsSelected(i)))
	}

	lines = append(lines,
		"",
		fmt.Sprintf("%d of %d selected", s.Count(), len(registry)),
		"Number to toggle, a = all, n = none, d = done: ",
	)
	return lines
}

// MenuHeight is the number of terminal rows a rendered menu occupies once
// the operator has answered the prompt.
func MenuHeight(size int) int {
	return size + headerLines + footerLines
}
