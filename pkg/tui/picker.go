// Package tui provides the full-screen skill picker. It drives the same
// selection state machine as the line-based menu, but reads single key
// presses and moves a cursor instead of asking for entry numbers.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jingkaihe/agentos/pkg/picker"
	"github.com/jingkaihe/agentos/pkg/skills"
	"github.com/pkg/errors"
)

// PickerModel is the bubbletea model of the skill picker
type PickerModel struct {
	registry skills.Registry
	state    picker.State
	cursor   int
	aborted  bool

	titleStyle    lipgloss.Style
	cursorStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	descStyle     lipgloss.Style
	helpStyle     lipgloss.Style
}

// NewPickerModel creates a picker over registry with nothing selected
func NewPickerModel(registry skills.Registry) PickerModel {
	return PickerModel{
		registry:      registry,
		state:         picker.NewState(len(registry)),
		titleStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7")),
		cursorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
		descStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		helpStyle:     lipgloss.NewStyle().Faint(true),
	}
}

// Init implements tea.Model
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc", "q":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.registry)-1 {
			m.cursor++
		}
	case " ", "x":
		m.state = m.state.Apply(picker.Token{Action: picker.ActionToggle, Index: m.cursor})
	case "a", "A":
		m.state = m.state.Apply(picker.Token{Action: picker.ActionSelectAll})
	case "n", "N":
		m.state = m.state.Apply(picker.Token{Action: picker.ActionSelectNone})
	case "enter", "d", "D":
		m.state = m.state.Apply(picker.Token{Action: picker.ActionDone})
		return m, tea.Quit
	}

	return m, nil
}

// View renders the picker
func (m PickerModel) View() string {
	if m.state.Done() || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.titleStyle.Render("Select skills to import") + "\n\n")

	for i, bundle := range m.registry {
		prefix := "  "
		if i == m.cursor {
			prefix = m.cursorStyle.Render("> ")
		}

		entry := fmt.Sprintf("%s %d. %s", picker.Marker(m.state.IsSelected(i)), i+1, bundle.Name)
		if m.state.IsSelected(i) {
			entry = m.selectedStyle.Render(entry)
		}
		if bundle.Description != "" {
			entry += " " + m.descStyle.Render("- "+picker.Truncate(bundle.Description, picker.MaxDescriptionWidth))
		}
		b.WriteString(prefix + entry + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.helpStyle.Render(fmt.Sprintf("%d of %d selected · space toggle · a all · n none · enter done · q quit",
		m.state.Count(), len(m.registry))))
	b.WriteString("\n")

	return b.String()
}

// State returns the current selection state
func (m PickerModel) State() picker.State {
	return m.state
}

// Aborted reports whether the operator quit without finishing
func (m PickerModel) Aborted() bool {
	return m.aborted
}

// Select runs the picker program on in/out and returns the selected ids.
// The terminal is put in raw mode only when in is the terminal's file
// itself; any other reader must deliver Enter as a carriage return.
func Select(ctx context.Context, registry skills.Registry, in io.Reader, out io.Writer) ([]string, error) {
	p := tea.NewProgram(
		NewPickerModel(registry),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if err != nil {
		return nil, errors.Wrap(err, "skill picker failed")
	}

	m, ok := final.(PickerModel)
	if !ok {
		return nil, errors.Errorf("unexpected picker model %T", final)
	}
	if m.Aborted() {
		return nil, picker.ErrAborted
	}

	return picker.Result(registry, m.State())
}
