// Package skills discovers importable skill bundles. A bundle is a directory
// whose name is its stable identifier; an optional SKILL.md inside it may
// carry YAML frontmatter overriding the display name and description.
package skills

import "github.com/pkg/errors"

const skillFileName = "SKILL.md"

var (
	// ErrSourceNotFound is returned when the source root is missing or is not a directory.
	ErrSourceNotFound = errors.New("skills source directory does not exist")
	// ErrNoBundles is returned when the source root has no bundle directories.
	ErrNoBundles = errors.New("no skills found in source directory")
)

// Bundle is one importable skill directory
type Bundle struct {
	ID          string // directory name, used for conflicts and copies
	Name        string // display name, defaults to ID
	Description string // one-line description, may be empty
	Dir         string // absolute or source-relative path of the bundle
}

// Registry is the ordered list of discovered bundles. Order is the source
// directory listing order and drives the numbering shown to the operator.
type Registry []Bundle

// IDs returns the bundle identifiers in registry order.
func (r Registry) IDs() []string {
	ids := make([]string, len(r))
	for i, b := range r {
		ids[i] = b.ID
	}
	return ids
}

// Filter returns the bundles whose ids are in ids, keeping registry order.
func (r Registry) Filter(ids []string) Registry {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var out Registry
	for _, b := range r {
		if want[b.ID] {
			out = append(out, b)
		}
	}
	return out
}
