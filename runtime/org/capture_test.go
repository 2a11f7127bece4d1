package org

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamsih300u/orchestrator/runtime/sharedmemory"
)

func TestDeriveInitialIntent(t *testing.T) {
	p := deriveInitialIntent("start project: repaint the garage")
	assert.Equal(t, "repaint the garage", p.Title)
	assert.Equal(t, []string{"project"}, p.Tags)
}

func TestComputeMissingFields(t *testing.T) {
	p := &sharedmemory.PendingProjectCapture{}
	assert.ElementsMatch(t, []string{"description", "initial_tasks"}, computeMissingFields(p))

	p.Description = "repaint the garage"
	p.InitialTasks = []string{"buy paint"}
	assert.Empty(t, computeMissingFields(p))
}

func TestMergeUserDetailsIntoPending_LabeledFields(t *testing.T) {
	p := &sharedmemory.PendingProjectCapture{Title: "Deck"}
	mergeUserDetailsIntoPending(p, "Description: Rebuild the back deck\nTasks:\n- buy lumber\n- rent saw")
	assert.Equal(t, "Rebuild the back deck", p.Description)
	assert.Equal(t, []string{"buy lumber", "rent saw"}, p.InitialTasks)
}

func TestMergeUserDetailsIntoPending_CommaFallback(t *testing.T) {
	p := &sharedmemory.PendingProjectCapture{Title: "Deck"}
	mergeUserDetailsIntoPending(p, "buy lumber, rent a saw, stain the boards")
	assert.Len(t, p.InitialTasks, 3)
	assert.Empty(t, p.Description)
}

func TestMergeUserDetailsIntoPending_TargetDate(t *testing.T) {
	p := &sharedmemory.PendingProjectCapture{Title: "Deck"}
	mergeUserDetailsIntoPending(p, "finish by <2026-08-15 Sat>")
	assert.Equal(t, "<2026-08-15 Sat>", p.TargetDate)
}

func TestMergeUserDetailsIntoPending_DoesNotOverwriteExisting(t *testing.T) {
	p := &sharedmemory.PendingProjectCapture{Description: "original description"}
	mergeUserDetailsIntoPending(p, "Description: a different description")
	assert.Equal(t, "original description", p.Description)
}

func TestBuildProjectBlockPreview(t *testing.T) {
	p := &sharedmemory.PendingProjectCapture{
		Title:        "Deck Rebuild",
		Description:  "Rebuild the back deck.",
		TargetDate:   "<2026-08-15 Sat>",
		Tags:         []string{"project", "home"},
		InitialTasks: []string{"buy lumber", "rent a saw"},
	}
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	preview := buildProjectBlockPreview(p, now)

	require.Contains(t, preview, "* Deck Rebuild :home:project:")
	assert.Contains(t, preview, ":PROPERTIES:")
	assert.Contains(t, preview, "SCHEDULED: <2026-08-15 Sat>")
	assert.Contains(t, preview, "Rebuild the back deck.")
	assert.Contains(t, preview, "** TODO buy lumber")
	assert.Contains(t, preview, "** TODO rent a saw")
}

func TestIsConfirmationAndCancellation(t *testing.T) {
	assert.True(t, isConfirmation("yes please"))
	assert.True(t, isConfirmation("ok"))
	assert.False(t, isConfirmation("not yet"))

	assert.True(t, isCancellation("no, cancel that"))
	assert.False(t, isCancellation("yes"))
}

func TestClonePendingCapture_IndependentCopy(t *testing.T) {
	orig := &sharedmemory.PendingProjectCapture{
		Title:        "Deck",
		Tags:         []string{"project"},
		InitialTasks: []string{"buy lumber"},
	}
	clone := clonePendingCapture(orig)
	clone.Title = "Changed"
	clone.Tags[0] = "changed"
	clone.InitialTasks = append(clone.InitialTasks, "rent a saw")

	assert.Equal(t, "Deck", orig.Title)
	assert.Equal(t, "project", orig.Tags[0])
	assert.Len(t, orig.InitialTasks, 1)
}
