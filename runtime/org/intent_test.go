package org

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent_Synthesis(t *testing.T) {
	links := []LinkRef{{FilePath: "notes.org"}}
	intentType, op := classifyIntent("compare this with the linked notes", links)
	assert.Equal(t, IntentSynthesis, intentType)
	assert.Equal(t, ManagementOp(""), op)
}

func TestClassifyIntent_SynthesisRequiresLinks(t *testing.T) {
	intentType, _ := classifyIntent("compare apples and oranges", nil)
	assert.NotEqual(t, IntentSynthesis, intentType)
}

func TestClassifyIntent_ProjectCapture(t *testing.T) {
	intentType, _ := classifyIntent("start project: repaint the garage", nil)
	assert.Equal(t, IntentProjectCapture, intentType)
}

func TestClassifyIntent_ManagementOps(t *testing.T) {
	cases := map[string]ManagementOp{
		"add a todo to call the plumber":   OpAdd,
		"show my inbox":                    OpList,
		"mark item done":                   OpToggle,
		"update item #3 to buy more paint": OpUpdate,
		"schedule item #2 for next week":   OpSchedule,
		"archive my old items":             OpArchiveDone,
		"hello there":                      OpList,
	}
	for msg, want := range cases {
		_, op := classifyIntent(msg, nil)
		assert.Equalf(t, want, op, "message %q", msg)
	}
}

func TestInferDocumentType(t *testing.T) {
	assert.Equal(t, "reference", inferDocumentType("api-reference.md"))
	assert.Equal(t, "project", inferDocumentType("deck-project-plan.org"))
	assert.Equal(t, "org", inferDocumentType("inbox.org"))
	assert.Equal(t, "markdown", inferDocumentType("readme.md"))
	assert.Equal(t, "unknown", inferDocumentType("data.bin"))
}
