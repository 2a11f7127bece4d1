package projectcontent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteContent_ArchitectureRoutesToNil(t *testing.T) {
	contentType, target := RouteContent("This describes the high-level system architecture and block diagram.", nil)
	assert.Equal(t, "architecture", contentType)
	assert.Nil(t, target)
}

func TestRouteContent_PicksHighestScoringCandidate(t *testing.T) {
	candidates := []DocumentCandidate{
		{DocumentID: "d1", Filename: "power.org", Title: "Power Specification", Description: "voltage and current requirements", FromReferenced: true},
		{DocumentID: "d2", Filename: "notes.org", Title: "Random Notes", Description: "misc"},
	}
	contentType, target := RouteContent("The voltage and current rating requirement is 5V at 2A.", candidates)
	require.Equal(t, "specification", contentType)
	require.NotNil(t, target)
	assert.Equal(t, "d1", target.DocumentID)
}

func TestRouteContent_NoMatchReturnsEmpty(t *testing.T) {
	contentType, target := RouteContent("hello there, how are you doing today", nil)
	assert.Equal(t, "", contentType)
	assert.Nil(t, target)
}
