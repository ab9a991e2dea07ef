package picker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jingkaihe/agentos/pkg/logger"
	"github.com/jingkaihe/agentos/pkg/skills"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// eraseUp moves the cursor up n rows and clears to the end of the screen.
const eraseUp = "\033[%dA\033[J"

// Terminal runs the selection menu over a line-oriented input stream
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	redraw bool
}

// NewTerminal creates a Terminal. When redraw is true the previous menu is
// erased before each new one so the menu updates in place.
func NewTerminal(in *bufio.Reader, out io.Writer, redraw bool) *Terminal {
	return &Terminal{
		in:     in,
		out:    out,
		redraw: redraw,
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Select blocks reading one line at a time until the operator enters d or
// D, and returns the selected ids in registry order.
func (t *Terminal) Select(ctx context.Context, registry skills.Registry) ([]string, error) {
	log := logger.G(ctx)
	state := NewState(len(registry))
	drawn := 0

	for !state.Done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if t.redraw && drawn > 0 {
			fmt.Fprintf(t.out, eraseUp, drawn)
		}
		lines := Render(registry, state)
		fmt.Fprint(t.out, strings.Join(lines, "\n"))
		drawn = MenuHeight(len(registry))

		line, err := t.in.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				return nil, errors.Wrap(err, "failed to read selection")
			}
			if strings.TrimSpace(line) == "" {
				fmt.Fprintln(t.out)
				return nil, ErrInputClosed
			}
			// A last line without a newline still counts.
			fmt.Fprintln(t.out)
		}

		tok := ParseToken(line, len(registry))
		log.WithField("action", tok.Action).Debug("selection input")
		state = state.Apply(tok)
	}

	return Result(registry, state)
}
