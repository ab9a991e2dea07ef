package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jingkaihe/agentos/pkg/logger"
	"github.com/jingkaihe/agentos/pkg/picker"
	"github.com/jingkaihe/agentos/pkg/presenter"
	"github.com/jingkaihe/agentos/pkg/skills"
	"github.com/jingkaihe/agentos/pkg/tui"
	"github.com/pkg/errors"
)

// Options drives one import run
type Options struct {
	SourceDir string
	DestDir   string
	Ignore    []string

	All       bool // select every bundle without asking
	Overwrite bool // replace conflicting bundles without asking
	Verbose   bool
	DryRun    bool
	TUI       bool // use the full-screen picker instead of the numbered menu

	// Redraw erases the previous numbered menu before drawing the next one.
	Redraw bool
	// TUIInput is the key stream for the full-screen picker. It must be the
	// unbuffered stdin file for the picker to switch the terminal to raw
	// mode; it defaults to the presenter input.
	TUIInput io.Reader

	Presenter presenter.Presenter
}

// Result describes what a run did
type Result struct {
	Discovered int
	Selected   []string
	Conflicts  []string
	Imported   []string
	// NothingToDo is set when skipping conflicts left nothing to import.
	NothingToDo bool
	DryRun      bool
}

// Run performs discovery, selection, conflict resolution and the copy, in
// that order. Nothing is written to the destination before the copy phase.
func Run(ctx context.Context, opts Options) (*Result, error) {
	p := opts.Presenter
	if p == nil {
		p = presenter.Default()
	}
	notice := func(format string, args ...any) {
		if opts.Verbose {
			p.Info(fmt.Sprintf(format, args...))
		}
	}
	log := logger.G(ctx).WithField("source", opts.SourceDir).WithField("destination", opts.DestDir)
	ctx = logger.WithLogger(ctx, log)

	imp, err := New(opts.DestDir,
		WithVerbose(opts.Verbose),
		WithPresenter(p),
		WithIgnore(opts.Ignore...),
	)
	if err != nil {
		return nil, err
	}

	discovery, err := skills.NewDiscovery(skills.WithSourceDir(opts.SourceDir))
	if err != nil {
		return nil, err
	}

	notice("Discovering skills in %s", opts.SourceDir)
	registry, err := discovery.Discover(ctx)
	if err != nil {
		return nil, err
	}
	notice("Found %d skill(s)", len(registry))

	result := &Result{Discovered: len(registry), DryRun: opts.DryRun}

	selected, err := selectBundles(ctx, opts, p, registry)
	if err != nil {
		return nil, err
	}
	result.Selected = selected
	notice("Selected %d skill(s): %s", len(selected), strings.Join(selected, ", "))

	notice("Checking for existing skills in %s", imp.DestDir())
	result.Conflicts = imp.Conflicts(selected)

	final, err := ResolveConflicts(ctx, p, selected, result.Conflicts, opts.Overwrite)
	if err != nil {
		return nil, err
	}
	if len(final) == 0 {
		result.NothingToDo = true
		p.Info("Nothing to do: every selected skill already exists")
		return result, nil
	}

	if opts.DryRun {
		restore := unquiet(p)
		p.Section("Dry run: skills that would be imported")
		for _, id := range final {
			p.Info("  - " + id)
		}
		restore()
		return result, nil
	}

	imported, err := imp.Import(ctx, registry.Filter(final))
	result.Imported = imported
	if err != nil {
		return result, err
	}

	p.Success(fmt.Sprintf("Imported %d skill(s) into %s", len(imported), imp.DestDir()))
	return result, nil
}

func selectBundles(ctx context.Context, opts Options, p presenter.Presenter, registry skills.Registry) ([]string, error) {
	switch {
	case opts.All:
		return picker.Result(registry, picker.AllSelected(len(registry)))
	case opts.TUI:
		in := opts.TUIInput
		if in == nil {
			in = p.Input()
		}
		return tui.Select(ctx, registry, in, p.Output())
	default:
		ids, err := picker.NewTerminal(p.Input(), p.Output(), opts.Redraw).Select(ctx, registry)
		if err != nil {
			return nil, errors.WithMessage(err, "selection failed")
		}
		return ids, nil
	}
}

// unquiet lifts quiet mode for output the operator asked for, and returns
// the function restoring it.
func unquiet(p presenter.Presenter) func() {
	if !p.IsQuiet() {
		return func() {}
	}
	p.SetQuiet(false)
	return func() { p.SetQuiet(true) }
}
