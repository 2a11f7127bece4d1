package sharedmemory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustomFieldLists_PythonLiteral(t *testing.T) {
	parsed := ParseCustomFieldLists(map[string]string{
		"files": "['./file1.md', './file2.md']",
		"title": "Deck Project",
	})
	require.Contains(t, parsed, "files")
	assert.Equal(t, []string{"./file1.md", "./file2.md"}, parsed["files"])
	assert.NotContains(t, parsed, "title")
}

func TestParseCustomFieldLists_JSON(t *testing.T) {
	parsed := ParseCustomFieldLists(map[string]string{
		"components": `["power.org", "enclosure.org"]`,
	})
	require.Contains(t, parsed, "components")
	assert.Equal(t, []string{"power.org", "enclosure.org"}, parsed["components"])
}

func TestParseCustomFieldLists_YAMLDashList(t *testing.T) {
	parsed := ParseCustomFieldLists(map[string]string{
		"schematics": "- ./a.org\n- ./b.org",
	})
	require.Contains(t, parsed, "schematics")
	assert.Equal(t, []string{"./a.org", "./b.org"}, parsed["schematics"])
}

func TestParseCustomFieldLists_NonListLeftOut(t *testing.T) {
	parsed := ParseCustomFieldLists(map[string]string{
		"status": "in-progress",
	})
	assert.NotContains(t, parsed, "status")
}

func TestParseCustomFieldLists_EmptyList(t *testing.T) {
	parsed := ParseCustomFieldLists(map[string]string{
		"files": "[]",
	})
	require.Contains(t, parsed, "files")
	assert.Empty(t, parsed["files"])
}
