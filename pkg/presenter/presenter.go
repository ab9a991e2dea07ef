// Package presenter provides consistent CLI output for user-facing messages:
// success, error, warning and informational lines with color support and
// quiet mode, plus line-based prompts read from a shared input stream.
package presenter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// Presenter defines the interface for consistent CLI output
type Presenter interface {
	Error(err error, context string)
	Success(message string)
	Warning(message string)
	Info(message string)
	Section(title string)
	Prompt(question string, options ...string) (string, error)
	Input() *bufio.Reader
	Output() io.Writer
	SetQuiet(quiet bool)
	IsQuiet() bool
}

// TerminalPresenter implements Presenter for terminal output
type TerminalPresenter struct {
	output      io.Writer
	errorOutput io.Writer
	input       *bufio.Reader
	colorMode   ColorMode
	quiet       bool
}

// ColorMode represents different color output modes
type ColorMode int

const (
	// ColorAuto lets the color package decide based on the terminal
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output
	ColorAlways
	// ColorNever disables colored output
	ColorNever
)

// New creates a TerminalPresenter bound to the process stdio.
func New() *TerminalPresenter {
	p := NewWithOptions(os.Stdout, os.Stderr, detectColorMode())
	p.SetInput(os.Stdin)
	return p
}

// NewForIO creates a TerminalPresenter over arbitrary streams, detecting the
// color mode from the environment.
func NewForIO(in io.Reader, output, errorOutput io.Writer) *TerminalPresenter {
	p := NewWithOptions(output, errorOutput, detectColorMode())
	p.SetInput(in)
	return p
}

// NewWithOptions creates a TerminalPresenter with custom writers. The input
// stream is empty until SetInput is called.
func NewWithOptions(output, errorOutput io.Writer, colorMode ColorMode) *TerminalPresenter {
	p := &TerminalPresenter{
		output:      output,
		errorOutput: errorOutput,
		input:       bufio.NewReader(strings.NewReader("")),
		colorMode:   colorMode,
	}

	switch colorMode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	case ColorAuto:
	}

	return p
}

func detectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}

	switch os.Getenv("AGENTOS_COLOR") {
	case "always", "force":
		return ColorAlways
	case "never", "off":
		return ColorNever
	default:
		return ColorAuto
	}
}

// SetInput replaces the stream prompts read from. The reader is buffered
// once so that successive prompts and the selection menu never lose input
// that was read ahead.
func (p *TerminalPresenter) SetInput(r io.Reader) {
	if br, ok := r.(*bufio.Reader); ok {
		p.input = br
		return
	}
	p.input = bufio.NewReader(r)
}

// Input returns the shared buffered input stream.
func (p *TerminalPresenter) Input() *bufio.Reader {
	return p.input
}

// Output returns the writer used for regular messages.
func (p *TerminalPresenter) Output() io.Writer {
	return p.output
}

// Error displays an error message to stderr
func (p *TerminalPresenter) Error(err error, context string) {
	if err == nil {
		return
	}

	errorColor := color.New(color.FgRed, color.Bold)
	if context != "" {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %s: %v\n", context, err)
	} else {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %v\n", err)
	}
}

// Success displays a success message
func (p *TerminalPresenter) Success(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgGreen, color.Bold).Fprintf(p.output, "✓ %s\n", message)
}

// Warning displays a warning message
func (p *TerminalPresenter) Warning(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgYellow, color.Bold).Fprintf(p.output, "⚠ %s\n", message)
}

// Info displays an informational message
func (p *TerminalPresenter) Info(message string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.output, "%s\n", message)
}

// Section displays a section header with an underline of the same width
func (p *TerminalPresenter) Section(title string) {
	if p.quiet {
		return
	}

	headerColor := color.New(color.Bold)
	headerColor.Fprintf(p.output, "%s\n", title)
	headerColor.Fprintf(p.output, "%s\n", strings.Repeat("-", len(title)))
}

// Prompt writes the question and reads one line of input. Prompts are shown
// even in quiet mode. io.EOF is returned when the input is exhausted before
// a line terminator and nothing was typed.
func (p *TerminalPresenter) Prompt(question string, options ...string) (string, error) {
	promptColor := color.New(color.FgCyan)

	if len(options) > 0 {
		promptColor.Fprintf(p.output, "%s [%s]: ", question, strings.Join(options, "/"))
	} else {
		promptColor.Fprintf(p.output, "%s: ", question)
	}

	response, err := p.input.ReadString('\n')
	if err != nil {
		if err == io.EOF && response != "" {
			return strings.TrimSpace(response), nil
		}
		if err == io.EOF {
			return "", err
		}
		return "", errors.Wrap(err, "failed to read input")
	}

	return strings.TrimSpace(response), nil
}

// SetQuiet enables or disables quiet mode
func (p *TerminalPresenter) SetQuiet(quiet bool) {
	p.quiet = quiet
}

// IsQuiet returns whether quiet mode is enabled
func (p *TerminalPresenter) IsQuiet() bool {
	return p.quiet
}

var defaultPresenter = New()

// Default returns the process-wide presenter bound to the process stdio.
func Default() *TerminalPresenter {
	return defaultPresenter
}

// Error displays an error message using the default presenter instance.
func Error(err error, context string) {
	defaultPresenter.Error(err, context)
}
