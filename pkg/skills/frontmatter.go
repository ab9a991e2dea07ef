package skills

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ParseFrontmatter extracts the leading `---` delimited header of a
// markdown document as a flat string map. The first line must be exactly
// the delimiter and a second delimiter line must close the header;
// otherwise ok is false and the document is treated as having no header.
//
// Only scalar values are returned. When the header is not valid YAML the
// plain `key: value` lines are used instead, with the last occurrence of a
// key winning.
func ParseFrontmatter(content []byte) (fields map[string]string, ok bool) {
	text := strings.TrimPrefix(string(content), "\ufeff")
	lines := strings.Split(text, "\n")

	if strings.TrimSuffix(lines[0], "\r") != frontmatterDelimiter {
		return nil, false
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSuffix(lines[i], "\r") == frontmatterDelimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, false
	}

	header := strings.Join(lines[1:end], "\n")
	fields, err := decodeHeader(header)
	if err != nil {
		fields = scanHeader(lines[1:end])
	}
	return fields, true
}

func decodeHeader(header string) (map[string]string, error) {
	fields := make(map[string]string)

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(header), &doc); err != nil {
		return nil, errors.Wrap(err, "invalid frontmatter")
	}
	if len(doc.Content) == 0 {
		return fields, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("frontmatter is not a mapping")
	}

	// Walking the node tree keeps duplicate keys (last wins) instead of
	// failing the way decoding into a map does.
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
			continue
		}
		fields[key.Value] = value.Value
	}
	return fields, nil
}

func scanHeader(lines []string) map[string]string {
	fields := make(map[string]string)

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" || line[0] == ' ' || line[0] == '\t' || line[0] == '#' {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" || strings.ContainsAny(key, " \t") {
			continue
		}
		fields[key] = unquote(strings.TrimSpace(value))
	}
	return fields
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
