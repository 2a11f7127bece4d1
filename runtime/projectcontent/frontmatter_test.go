package projectcontent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontmatter_RoundTrip(t *testing.T) {
	content := "---\ntitle: Deck Project\ntags:\n  - project\n  - outdoor\n---\nBody text here.\n"
	fields, body := ParseFrontmatter(content)
	require.Equal(t, "Deck Project", fields["title"])
	assert.Equal(t, "Body text here.\n", body)

	restored, err := RestoreFrontmatter(fields, body)
	require.NoError(t, err)
	fields2, body2 := ParseFrontmatter(restored)
	assert.Equal(t, fields["title"], fields2["title"])
	assert.Equal(t, body, body2)
}

func TestParseFrontmatter_NoFrontmatter(t *testing.T) {
	fields, body := ParseFrontmatter("just body text")
	assert.Empty(t, fields)
	assert.Equal(t, "just body text", body)
}

func TestLostFields(t *testing.T) {
	before := map[string]any{"title": "X", "tags": []string{"a"}, "components": []string{"power.org"}}
	after := map[string]any{"title": "X", "tags": []string{"a"}}
	lost := lostFields(before, after)
	require.Len(t, lost, 1)
	assert.Equal(t, "components", lost[0])
}

func TestLostFields_NothingLost(t *testing.T) {
	before := map[string]any{"title": "X"}
	after := map[string]any{"title": "X"}
	assert.Empty(t, lostFields(before, after))
}
