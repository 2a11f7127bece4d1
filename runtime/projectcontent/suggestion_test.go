package projectcontent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func substantialComponentContent() string {
	return strings.Repeat("The TexasInstruments LM2596 regulator and AtmelAT328P microcontroller form the core specification of this subsystem. ", 20)
}

func TestSuggestNewFile_SubstantialContentSuggested(t *testing.T) {
	s := SuggestNewFile("component", substantialComponentContent(), nil, 0.0)
	require.NotNil(t, s)
	assert.Equal(t, "component", s.ContentType)
	assert.Equal(t, "components", s.FrontmatterKey)
	assert.NotEmpty(t, s.SuggestedFilename)
}

func TestSuggestNewFile_ExistingFileGoodEnough(t *testing.T) {
	s := SuggestNewFile("component", substantialComponentContent(), nil, 0.5)
	assert.Nil(t, s)
}

func TestSuggestNewFile_ContentTooShort(t *testing.T) {
	s := SuggestNewFile("component", "Short content about the LM2596 and AT328P.", nil, 0.0)
	assert.Nil(t, s)
}

func TestSuggestNewFile_ArchitectureNeverSuggested(t *testing.T) {
	s := SuggestNewFile("architecture", substantialComponentContent(), nil, 0.0)
	assert.Nil(t, s)
}
