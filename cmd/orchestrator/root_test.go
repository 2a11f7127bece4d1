package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_PrintsVersion(t *testing.T) {
	var out bytes.Buffer
	cmd := versionCmd()
	cmd.SetOut(&out)
	err := cmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "orchestrator")
}
