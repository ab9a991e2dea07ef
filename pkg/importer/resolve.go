package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jingkaihe/agentos/pkg/logger"
	"github.com/jingkaihe/agentos/pkg/picker"
	"github.com/jingkaihe/agentos/pkg/presenter"
	"github.com/pkg/errors"
)

// ErrCancelled is returned when the operator cancels at the conflict prompt.
var ErrCancelled = errors.New("import cancelled")

// Resolution is the operator's answer to a non-empty conflict set
type Resolution int

const (
	// ResolutionOverwrite replaces the existing destination bundles
	ResolutionOverwrite Resolution = iota + 1
	// ResolutionSkip drops the conflicting bundles from the selection
	ResolutionSkip
	// ResolutionCancel aborts before anything is written
	ResolutionCancel
)

func (r Resolution) String() string {
	switch r {
	case ResolutionOverwrite:
		return "overwrite"
	case ResolutionSkip:
		return "skip"
	case ResolutionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// ParseResolution maps a prompt answer to a Resolution.
func ParseResolution(answer string) (Resolution, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "o", "overwrite", "1":
		return ResolutionOverwrite, true
	case "s", "skip", "2":
		return ResolutionSkip, true
	case "c", "cancel", "3":
		return ResolutionCancel, true
	default:
		return 0, false
	}
}

// WithoutConflicts returns selected minus conflicts, keeping order.
func WithoutConflicts(selected, conflicts []string) []string {
	skip := make(map[string]bool, len(conflicts))
	for _, id := range conflicts {
		skip[id] = true
	}

	remaining := make([]string, 0, len(selected))
	for _, id := range selected {
		if !skip[id] {
			remaining = append(remaining, id)
		}
	}
	return remaining
}

// ResolveConflicts decides what to import when some selected bundles
// already exist. With no conflicts, or when overwrite is set, the selection
// is returned unchanged without prompting. Otherwise the operator is asked
// until they give a recognised answer, even in quiet mode. The returned
// selection may be empty when the operator skipped every bundle.
func ResolveConflicts(ctx context.Context, p presenter.Presenter, selected, conflicts []string, overwrite bool) ([]string, error) {
	log := logger.G(ctx)

	if len(conflicts) == 0 {
		return selected, nil
	}
	if overwrite {
		log.WithField("conflicts", conflicts).Debug("overwriting existing skills")
		return selected, nil
	}

	defer unquiet(p)()

	p.Section("The following skills already exist in the destination")
	for _, id := range conflicts {
		p.Info("  - " + id)
	}
	p.Info("")
	p.Info("  o) Overwrite existing skills")
	p.Info("  s) Skip existing skills")
	p.Info("  c) Cancel import")

	for {
		answer, err := p.Prompt("Choose an option", "o", "s", "c")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, picker.ErrInputClosed
			}
			return nil, err
		}

		resolution, ok := ParseResolution(answer)
		if !ok {
			p.Warning(fmt.Sprintf("Unrecognized choice %q", answer))
			continue
		}

		log.WithField("resolution", resolution.String()).Debug("conflicts resolved")
		switch resolution {
		case ResolutionOverwrite:
			return selected, nil
		case ResolutionSkip:
			return WithoutConflicts(selected, conflicts), nil
		default:
			return nil, ErrCancelled
		}
	}
}
