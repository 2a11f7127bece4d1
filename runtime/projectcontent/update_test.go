package projectcontent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPlaceholderContent(t *testing.T) {
	assert.True(t, isPlaceholderContent("TODO: add details"))
	assert.True(t, isPlaceholderContent("short"))
	assert.True(t, isPlaceholderContent("## Header\n\n"))
	assert.False(t, isPlaceholderContent(strings.Repeat("This section has real substantive content. ", 5)))
}

func TestFindSection_ExactMatch(t *testing.T) {
	content := "# Plan\n\n## Power Supply\n\nOld details here.\n\n## Enclosure\n\nBox notes.\n"
	matches := findSection(content, "Power Supply")
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0].Content, "Old details here")
	assert.False(t, matches[0].Fuzzy)
}

func TestFindSection_FuzzyMatch(t *testing.T) {
	content := "# Plan\n\n## Power Supply Design\n\nDetails.\n"
	matches := findSection(content, "Power Supply")
	require.Len(t, matches, 1)
	assert.True(t, matches[0].Fuzzy)
}

func TestFindSection_NoMatch(t *testing.T) {
	content := "# Plan\n\n## Enclosure\n\nBox notes.\n"
	assert.Empty(t, findSection(content, "Power Supply"))
}

func TestShouldUpdateExistingSection_PlaceholderAlwaysUpdates(t *testing.T) {
	content := "## Power Supply\n\nTODO: add details\n\n## Other\n\nStuff.\n"
	assert.True(t, ShouldUpdateExistingSection(content, "Power Supply", "New detailed content about the regulator and rail voltages."))
}

func TestShouldUpdateExistingSection_ShortExistingSectionUpdates(t *testing.T) {
	content := "## Power Supply\n\nBrief.\n\n## Other\n\nStuff.\n"
	assert.True(t, ShouldUpdateExistingSection(content, "Power Supply", "A much longer replacement paragraph describing the supply in detail."))
}

func TestShouldUpdateExistingSection_NoMatchAppends(t *testing.T) {
	content := strings.Repeat("word ", 100)
	assert.False(t, ShouldUpdateExistingSection(content, "Nonexistent Section", "new content"))
}
