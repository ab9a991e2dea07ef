// Package picker implements the interactive skill selection menu. The
// selection state machine and the menu renderer are pure functions of their
// inputs; Terminal is the thin adapter that reads operator lines and
// redraws the menu in place.
package picker

import (
	"strconv"
	"strings"

	"github.com/jingkaihe/agentos/pkg/skills"
	"github.com/pkg/errors"
)

var (
	// ErrEmptySelection is returned when the operator finishes with nothing selected.
	ErrEmptySelection = errors.New("no skills selected")
	// ErrInputClosed is returned when input ends before the operator finished.
	ErrInputClosed = errors.New("input closed before selection was finished")
	// ErrAborted is returned when the operator quits the full-screen picker.
	ErrAborted = errors.New("selection aborted")
)

// Action is what a token asks the state machine to do
type Action int

const (
	// ActionIgnore leaves the state untouched
	ActionIgnore Action = iota
	// ActionToggle flips one entry
	ActionToggle
	// ActionSelectAll marks every entry
	ActionSelectAll
	// ActionSelectNone clears every entry
	ActionSelectNone
	// ActionDone finishes selection
	ActionDone
)

// Token is one parsed unit of operator input
type Token struct {
	Action Action
	Index  int // 0-based entry for ActionToggle
}

// ParseToken interprets one input line for a menu of size entries. Numbers
// are 1-based and written as plain digits; signs, leading zeros, numbers
// outside 1..size and any other text are ignored.
func ParseToken(input string, size int) Token {
	input = strings.TrimSpace(input)

	switch input {
	case "a", "A":
		return Token{Action: ActionSelectAll}
	case "n", "N":
		return Token{Action: ActionSelectNone}
	case "d", "D":
		return Token{Action: ActionDone}
	}

	if !isEntryNumber(input) {
		return Token{Action: ActionIgnore}
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > size {
		return Token{Action: ActionIgnore}
	}
	return Token{Action: ActionToggle, Index: n - 1}
}

func isEntryNumber(s string) bool {
	if s == "" || s[0] == '0' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// State holds one selection flag per registry entry, index-aligned with
// the registry it was created for.
type State struct {
	selected []bool
	done     bool
}

// NewState returns a state of size entries, none selected.
func NewState(size int) State {
	return State{selected: make([]bool, size)}
}

// AllSelected returns a finished state with every entry selected. It is the
// state reached by applying "a" then "d" to NewState(size).
func AllSelected(size int) State {
	return NewState(size).
		Apply(Token{Action: ActionSelectAll}).
		Apply(Token{Action: ActionDone})
}

// Apply returns the state after tok. The receiver is not modified.
func (s State) Apply(tok Token) State {
	next := State{
		selected: make([]bool, len(s.selected)),
		done:     s.done,
	}
	copy(next.selected, s.selected)

	switch tok.Action {
	case ActionToggle:
		if tok.Index >= 0 && tok.Index < len(next.selected) {
			next.selected[tok.Index] = !next.selected[tok.Index]
		}
	case ActionSelectAll:
		for i := range next.selected {
			next.selected[i] = true
		}
	case ActionSelectNone:
		for i := range next.selected {
			next.selected[i] = false
		}
	case ActionDone:
		next.done = true
	}

	return next
}

// ApplyInput parses input against the state's size and applies it.
func (s State) ApplyInput(input string) State {
	return s.Apply(ParseToken(input, s.Len()))
}

// Len returns the number of entries
func (s State) Len() int {
	return len(s.selected)
}

// IsSelected reports whether entry i is selected
func (s State) IsSelected(i int) bool {
	return i >= 0 && i < len(s.selected) && s.selected[i]
}

// Count returns how many entries are selected
func (s State) Count() int {
	n := 0
	for _, sel := range s.selected {
		if sel {
			n++
		}
	}
	return n
}

// Done reports whether the operator finished selection
func (s State) Done() bool {
	return s.done
}

// Selected returns the ids of the selected bundles in registry order.
func (s State) Selected(registry skills.Registry) []string {
	var ids []string
	for i, b := range registry {
		if s.IsSelected(i) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// Result converts a finished state to the selected ids, failing with
// ErrEmptySelection when nothing was chosen.
func Result(registry skills.Registry, s State) ([]string, error) {
	ids := s.Selected(registry)
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}
	return ids, nil
}
