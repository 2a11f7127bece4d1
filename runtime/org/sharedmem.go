package org

import (
	"github.com/adamsih300u/orchestrator/runtime/sharedmemory"
	"github.com/adamsih300u/orchestrator/runtime/workflow"
)

const sharedMemoryKey = "shared_memory"

func sharedMemoryOf(state workflow.State) *sharedmemory.Memory {
	if m, ok := state[sharedMemoryKey].(*sharedmemory.Memory); ok && m != nil {
		return m
	}
	return sharedmemory.New()
}

func withSharedMemoryPatch(state workflow.State, patch *sharedmemory.Memory) workflow.State {
	return workflow.State{sharedMemoryKey: sharedmemory.Merge(sharedMemoryOf(state), patch)}
}
