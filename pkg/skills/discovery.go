package skills

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/jingkaihe/agentos/pkg/logger"
	"github.com/pkg/errors"
)

const (
	// DefaultInstallDir is the user-global Agent OS install, relative to $HOME.
	DefaultInstallDir = "agent-os"
	// SkillsDir is where skills live below an install or a project root.
	SkillsDir = ".claude/skills"
)

// Discovery enumerates skill bundles below a source root
type Discovery struct {
	sourceDir string
}

// Option is a function that configures a Discovery
type Option func(*Discovery) error

// WithSourceDir sets the source root explicitly
func WithSourceDir(dir string) Option {
	return func(d *Discovery) error {
		if dir == "" {
			return errors.New("skills source directory cannot be empty")
		}
		d.sourceDir = dir
		return nil
	}
}

// WithDefaultSourceDir uses ~/agent-os/.claude/skills
func WithDefaultSourceDir() Option {
	return func(d *Discovery) error {
		dir, err := DefaultSourceDir()
		if err != nil {
			return err
		}
		d.sourceDir = dir
		return nil
	}
}

// DefaultSourceDir returns the global install's skills directory.
func DefaultSourceDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(homeDir, DefaultInstallDir, filepath.FromSlash(SkillsDir)), nil
}

// NewDiscovery creates a discovery; with no options the default source is used.
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{}

	if len(opts) == 0 {
		opts = []Option{WithDefaultSourceDir()}
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// SourceDir returns the root being scanned
func (d *Discovery) SourceDir() string {
	return d.sourceDir
}

// Discover lists the immediate subdirectories of the source root in
// directory-listing order. Hidden directories are not bundles. A bundle
// whose SKILL.md cannot be read keeps its default name and description.
func (d *Discovery) Discover(ctx context.Context) (Registry, error) {
	log := logger.G(ctx).WithField("source", d.sourceDir)

	info, err := os.Stat(d.sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrSourceNotFound, d.sourceDir)
		}
		return nil, errors.Wrapf(err, "failed to access skills source %s", d.sourceDir)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(ErrSourceNotFound, "%s is not a directory", d.sourceDir)
	}

	entries, err := os.ReadDir(d.sourceDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read skills source %s", d.sourceDir)
	}

	var (
		registry Registry
		warnings *multierror.Error
	)
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		entryPath := filepath.Join(d.sourceDir, entry.Name())

		// Stat rather than entry.IsDir so symlinked bundles are followed.
		info, err := os.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}

		bundle, err := LoadBundle(entryPath)
		if err != nil {
			warnings = multierror.Append(warnings, err)
		}
		registry = append(registry, bundle)
	}

	if err := warnings.ErrorOrNil(); err != nil {
		log.WithError(err).Debug("some skill headers could not be read, using defaults")
	}

	if len(registry) == 0 {
		return nil, errors.Wrap(ErrNoBundles, d.sourceDir)
	}

	log.WithField("count", len(registry)).Debug("discovered skills")
	return registry, nil
}

// LoadBundle builds the bundle for dir. The returned bundle is always usable;
// a non-nil error only reports that SKILL.md existed but could not be read.
func LoadBundle(dir string) (Bundle, error) {
	id := filepath.Base(dir)
	bundle := Bundle{
		ID:   id,
		Name: id,
		Dir:  dir,
	}

	skillPath := filepath.Join(dir, skillFileName)
	content, err := os.ReadFile(skillPath)
	if err != nil {
		if os.IsNotExist(err) {
			return bundle, nil
		}
		return bundle, errors.Wrapf(err, "failed to read %s", skillPath)
	}

	fields, ok := ParseFrontmatter(content)
	if !ok {
		return bundle, nil
	}
	if name := strings.TrimSpace(fields["name"]); name != "" {
		bundle.Name = name
	}
	if description := strings.Join(strings.Fields(fields["description"]), " "); description != "" {
		bundle.Description = description
	}

	return bundle, nil
}
