package projectcontent

import (
	"strings"

	"gopkg.in/yaml.v3"
)

var frontmatterDelim = "---"

// ParseFrontmatter splits a document into its YAML frontmatter fields and
// body. Documents without a leading "---" block return an empty field map
// and the content unchanged.
func ParseFrontmatter(content string) (map[string]any, string) {
	trimmed := strings.TrimLeft(content, "\n")
	if !strings.HasPrefix(trimmed, frontmatterDelim) {
		return map[string]any{}, content
	}
	rest := trimmed[len(frontmatterDelim):]
	idx := strings.Index(rest, "\n"+frontmatterDelim)
	if idx < 0 {
		return map[string]any{}, content
	}
	block := rest[:idx]
	body := rest[idx+len("\n"+frontmatterDelim):]
	body = strings.TrimPrefix(body, "\n")

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(block), &fields); err != nil || fields == nil {
		return map[string]any{}, content
	}
	return fields, body
}

// RestoreFrontmatter rebuilds a document from a field map and body,
// re-serializing the frontmatter block as YAML.
func RestoreFrontmatter(fields map[string]any, body string) (string, error) {
	block, err := yaml.Marshal(fields)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(frontmatterDelim)
	b.WriteString("\n")
	b.Write(block)
	b.WriteString(frontmatterDelim)
	b.WriteString("\n")
	b.WriteString(body)
	return b.String(), nil
}

// lostFields reports which keys present in before are absent from after,
// the set the frontmatter preservation invariant must restore.
func lostFields(before, after map[string]any) []string {
	var lost []string
	for k := range before {
		if _, ok := after[k]; !ok {
			lost = append(lost, k)
		}
	}
	return lost
}
