// Package importer copies selected skill bundles from a global Agent OS
// install into a project's .claude/skills directory. It detects bundles
// that already exist at the destination, lets the operator resolve those
// conflicts, and performs the copy.
//
// Copies are not transactional: when a bundle fails to copy, bundles that
// were already imported stay in place and the error is returned as is.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/jingkaihe/agentos/pkg/logger"
	"github.com/jingkaihe/agentos/pkg/presenter"
	"github.com/jingkaihe/agentos/pkg/skills"
	"github.com/pkg/errors"
	"github.com/rogpeppe/go-internal/lockedfile"
)

// Importer copies bundles into a destination root
type Importer struct {
	destDir   string
	verbose   bool
	ignore    []glob.Glob
	presenter presenter.Presenter
}

// Option configures an Importer
type Option func(*Importer) error

// WithVerbose reports each bundle as it is copied
func WithVerbose(verbose bool) Option {
	return func(i *Importer) error {
		i.verbose = verbose
		return nil
	}
}

// WithPresenter sets where progress notices are written
func WithPresenter(p presenter.Presenter) Option {
	return func(i *Importer) error {
		i.presenter = p
		return nil
	}
}

// WithIgnore excludes files and directories matching any of the glob
// patterns. Patterns match the slash-separated path relative to the bundle
// root, or the base name.
func WithIgnore(patterns ...string) Option {
	return func(i *Importer) error {
		for _, pattern := range patterns {
			g, err := glob.Compile(pattern, '/')
			if err != nil {
				return errors.Wrapf(err, "invalid ignore pattern %q", pattern)
			}
			i.ignore = append(i.ignore, g)
		}
		return nil
	}
}

// New creates an importer writing below destDir
func New(destDir string, opts ...Option) (*Importer, error) {
	if destDir == "" {
		return nil, errors.New("destination directory cannot be empty")
	}

	i := &Importer{
		destDir:   destDir,
		presenter: presenter.Default(),
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}

	return i, nil
}

// DestDir returns the destination root
func (i *Importer) DestDir() string {
	return i.destDir
}

// Conflicts returns the ids that already exist as directories under the
// destination root, in the order given.
func (i *Importer) Conflicts(ids []string) []string {
	var conflicts []string
	for _, id := range ids {
		info, err := os.Stat(filepath.Join(i.destDir, id))
		if err == nil && info.IsDir() {
			conflicts = append(conflicts, id)
		}
	}
	return conflicts
}

// Import creates the destination root if needed and copies each bundle,
// replacing any existing destination bundle of the same id. It stops at the
// first failure and returns the ids imported before it. Nothing is written
// when a bundle's destination path is taken by something other than a
// directory.
func (i *Importer) Import(ctx context.Context, bundles skills.Registry) ([]string, error) {
	log := logger.G(ctx).WithField("destination", i.destDir)

	for _, bundle := range bundles {
		if err := checkTarget(filepath.Join(i.destDir, bundle.ID)); err != nil {
			return nil, errors.Wrapf(err, "failed to import skill '%s'", bundle.ID)
		}
	}

	if err := os.MkdirAll(i.destDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create destination %s", i.destDir)
	}

	imported := make([]string, 0, len(bundles))
	for _, bundle := range bundles {
		dst := filepath.Join(i.destDir, bundle.ID)
		if i.verbose {
			i.presenter.Info(fmt.Sprintf("Importing '%s'...", bundle.ID))
		}

		if err := i.copyBundle(bundle.Dir, dst); err != nil {
			return imported, errors.Wrapf(err, "failed to import skill '%s'", bundle.ID)
		}

		log.WithField("skill", bundle.ID).Debug("imported skill")
		imported = append(imported, bundle.ID)
		if i.verbose {
			i.presenter.Success(fmt.Sprintf("Imported '%s' to %s", bundle.ID, dst))
		}
	}

	return imported, nil
}

// copyBundle replaces dst with a copy of src. A symlinked bundle root is
// copied as the directory it points to; symlinks inside it are recreated.
func (i *Importer) copyBundle(src, dst string) error {
	src, err := filepath.EvalSymlinks(src)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dst); err != nil {
		return err
	}

	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		if relPath != "." && i.ignored(relPath) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		destPath := filepath.Join(dst, relPath)

		switch {
		case info.IsDir():
			return os.MkdirAll(destPath, info.Mode().Perm()|0o700)
		case info.Mode()&os.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(target, destPath)
		default:
			return copyFile(path, destPath, info.Mode().Perm())
		}
	})
}

// checkTarget fails when dst exists and is neither a directory nor a
// symlink to one.
func checkTarget(dst string) error {
	info, err := os.Lstat(dst)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		if info, err = os.Stat(dst); err != nil {
			return errors.Errorf("%s exists and is not a directory", dst)
		}
	}
	if !info.IsDir() {
		return errors.Errorf("%s exists and is not a directory", dst)
	}
	return nil
}

func (i *Importer) ignored(relPath string) bool {
	slashed := filepath.ToSlash(relPath)
	base := filepath.Base(relPath)
	for _, g := range i.ignore {
		if g.Match(slashed) || g.Match(base) {
			return true
		}
	}
	return false
}

// copyFile writes dst while holding an exclusive lock on it.
func copyFile(src, dst string, perm os.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	if err := lockedfile.Write(dst, srcFile, perm); err != nil {
		return err
	}
	return os.Chmod(dst, perm)
}
