package sharedmemory

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseCustomFieldLists recognizes frontmatter custom fields that carry a
// stringified list (the wire format re-renders a YAML list as one of
// several textual shapes) and parses each back into a string slice. Keys
// that don't decode as a list are left out; callers read the raw string
// from CustomFields unchanged for those.
func ParseCustomFieldLists(customFields map[string]string) map[string][]string {
	parsed := map[string][]string{}
	for key, value := range customFields {
		if list, ok := parseStringList(value); ok {
			parsed[key] = list
		}
	}
	return parsed
}

func parseStringList(value string) ([]string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, false
	}

	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		if list, ok := parsePythonLiteralList(trimmed); ok {
			return list, true
		}
		var jsonList []string
		if err := json.Unmarshal([]byte(trimmed), &jsonList); err == nil {
			return jsonList, true
		}
	}

	if strings.HasPrefix(trimmed, "-") {
		var yamlList []string
		if err := yaml.Unmarshal([]byte(value), &yamlList); err == nil && len(yamlList) > 0 {
			return yamlList, true
		}
	}

	return nil, false
}

// parsePythonLiteralList handles the ast.literal_eval-style rendering of a
// Python list of strings, e.g. "['./file1.md', './file2.md']". It only
// recognizes a flat list of quoted strings; anything else falls through to
// the JSON and YAML parsers.
func parsePythonLiteralList(s string) ([]string, bool) {
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return []string{}, true
	}

	var items []string
	var b strings.Builder
	var quote byte
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		switch {
		case quote != 0:
			if c == quote && (i == 0 || inner[i-1] != '\\') {
				quote = 0
				continue
			}
			b.WriteByte(c)
		case c == '\'' || c == '"':
			quote = c
		case c == ',':
			items = append(items, b.String())
			b.Reset()
		case c == ' ':
			// skip separators between items
		default:
			return nil, false
		}
	}
	if quote != 0 {
		return nil, false
	}
	items = append(items, b.String())
	return items, true
}
