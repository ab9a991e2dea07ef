package picker

import (
	"testing"

	"github.com/jingkaihe/agentos/pkg/skills"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(ids ...string) skills.Registry {
	registry := make(skills.Registry, len(ids))
	for i, id := range ids {
		registry[i] = skills.Bundle{ID: id, Name: id}
	}
	return registry
}

func replay(size int, inputs ...string) State {
	s := NewState(size)
	for _, in := range inputs {
		s = s.ApplyInput(in)
	}
	return s
}

func flags(s State) []bool {
	out := make([]bool, s.Len())
	for i := range out {
		out[i] = s.IsSelected(i)
	}
	return out
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		input    string
		expected Token
	}{
		{"1", Token{Action: ActionToggle, Index: 0}},
		{" 3 \n", Token{Action: ActionToggle, Index: 2}},
		{"a", Token{Action: ActionSelectAll}},
		{"A", Token{Action: ActionSelectAll}},
		{"n", Token{Action: ActionSelectNone}},
		{"N", Token{Action: ActionSelectNone}},
		{"d", Token{Action: ActionDone}},
		{"D\n", Token{Action: ActionDone}},
		{"0", Token{Action: ActionIgnore}},
		{"4", Token{Action: ActionIgnore}},
		{"-1", Token{Action: ActionIgnore}},
		{"+1", Token{Action: ActionIgnore}},
		{"01", Token{Action: ActionIgnore}},
		{"1.0", Token{Action: ActionIgnore}},
		{"", Token{Action: ActionIgnore}},
		{"done", Token{Action: ActionIgnore}},
		{"1 2", Token{Action: ActionIgnore}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseToken(tt.input, 3))
		})
	}
}

func TestStateStartsEmpty(t *testing.T) {
	s := NewState(3)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 0, s.Count())
	assert.False(t, s.Done())
	assert.Equal(t, []bool{false, false, false}, flags(s))
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	before := NewState(2)
	after := before.ApplyInput("1")

	assert.False(t, before.IsSelected(0))
	assert.True(t, after.IsSelected(0))
}

func TestToggleTwiceRestores(t *testing.T) {
	for _, start := range [][]string{nil, {"a"}, {"2"}, {"1", "3"}} {
		base := replay(3, start...)
		for i := 1; i <= 3; i++ {
			input := string(rune('0' + i))
			again := base.ApplyInput(input).ApplyInput(input)
			assert.Equal(t, flags(base), flags(again), "start %v toggle %d", start, i)
		}
	}
}

func TestSelectAllAndNoneAreIdempotent(t *testing.T) {
	all := replay(4, "2", "a")
	assert.Equal(t, []bool{true, true, true, true}, flags(all))
	assert.Equal(t, flags(all), flags(all.ApplyInput("A")))

	none := all.ApplyInput("n")
	assert.Equal(t, []bool{false, false, false, false}, flags(none))
	assert.Equal(t, flags(none), flags(none.ApplyInput("N")))
}

func TestIgnoredInputLeavesStateUnchanged(t *testing.T) {
	base := replay(3, "2")
	for _, in := range []string{"", "x", "9", "0", "yes"} {
		next := base.ApplyInput(in)
		assert.Equal(t, flags(base), flags(next))
		assert.False(t, next.Done())
	}
}

func TestScriptedSelection(t *testing.T) {
	registry := testRegistry("alpha", "beta", "gamma")
	s := replay(len(registry), "1", "3", "x", "1", "2", "d")

	require.True(t, s.Done())
	ids, err := Result(registry, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta", "gamma"}, ids)
}

func TestAllSelectedMatchesManualSelectAll(t *testing.T) {
	registry := testRegistry("alpha", "beta", "gamma")

	manual, err := Result(registry, replay(len(registry), "a", "d"))
	require.NoError(t, err)
	bypass, err := Result(registry, AllSelected(len(registry)))
	require.NoError(t, err)

	assert.Equal(t, manual, bypass)
	assert.Equal(t, registry.IDs(), bypass)
}

func TestResultEmptySelection(t *testing.T) {
	registry := testRegistry("alpha")
	_, err := Result(registry, replay(1, "1", "1", "d"))
	assert.True(t, errors.Is(err, ErrEmptySelection))
}
