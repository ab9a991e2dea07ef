package importer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jingkaihe/agentos/pkg/presenter"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under root; keys are slash-separated relative paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// snapshot returns every file under root keyed by slash-separated relative
// path, and every directory with an empty value and a trailing slash.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return out
	}

	require.NoError(t, filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return err
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			out[rel+"/"] = ""
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	}))
	return out
}

func testPresenter(input string) (*presenter.TerminalPresenter, *bytes.Buffer) {
	var out bytes.Buffer
	p := presenter.NewWithOptions(&out, &out, presenter.ColorNever)
	p.SetInput(strings.NewReader(input))
	return p, &out
}

// sourceFixture lays out the two-bundle source used across tests.
func sourceFixture(t *testing.T) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "agent-os", ".claude", "skills")
	writeTree(t, src, map[string]string{
		"alpha/notes.txt":       "alpha notes\n",
		"alpha/scripts/run.sh":  "#!/bin/sh\necho alpha\n",
		"beta/SKILL.md":         "---\nname: Beta Tool\ndescription: does beta things\n---\n\n# Beta\n",
		"beta/reference/api.md": "beta api\n",
	})
	return src
}
