package picker

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTerminal(t *testing.T, input string, redraw bool, ids ...string) ([]string, string, error) {
	t.Helper()
	var out bytes.Buffer
	term := NewTerminal(bufio.NewReader(strings.NewReader(input)), &out, redraw)
	selected, err := term.Select(context.Background(), testRegistry(ids...))
	return selected, out.String(), err
}

func TestTerminalSelect(t *testing.T) {
	selected, out, err := runTerminal(t, "2\nhello\n3\nd\n", false, "alpha", "beta", "gamma")
	require.NoError(t, err)
	assert.Equal(t, []string{"beta", "gamma"}, selected)

	assert.Equal(t, 4, strings.Count(out, "Select skills to import:"))
	assert.NotContains(t, out, "\033[")
}

func TestTerminalRedrawErasesPreviousMenu(t *testing.T) {
	_, out, err := runTerminal(t, "1\nd\n", true, "alpha", "beta")
	require.NoError(t, err)

	erase := "\033[7A\033[J"
	assert.Equal(t, 1, strings.Count(out, erase))
	assert.False(t, strings.HasPrefix(out, erase))
}

func TestTerminalLastLineWithoutNewline(t *testing.T) {
	selected, _, err := runTerminal(t, "a\nd", false, "alpha", "beta")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, selected)
}

func TestTerminalErrors(t *testing.T) {
	t.Run("empty selection", func(t *testing.T) {
		_, _, err := runTerminal(t, "d\n", false, "alpha")
		assert.True(t, errors.Is(err, ErrEmptySelection))
	})

	t.Run("input closed", func(t *testing.T) {
		_, _, err := runTerminal(t, "1\n", false, "alpha")
		assert.True(t, errors.Is(err, ErrInputClosed))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		term := NewTerminal(bufio.NewReader(strings.NewReader("d\n")), &bytes.Buffer{}, false)
		_, err := term.Select(ctx, testRegistry("alpha"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
