package research

import (
	"github.com/adamsih300u/orchestrator/runtime/sharedmemory"
	"github.com/adamsih300u/orchestrator/runtime/workflow"
)

const sharedMemoryKey = "shared_memory"

// sharedMemoryOf returns the Memory carried in state, or an empty one if
// absent or of an unexpected type.
func sharedMemoryOf(state workflow.State) *sharedmemory.Memory {
	if m, ok := state[sharedMemoryKey].(*sharedmemory.Memory); ok && m != nil {
		return m
	}
	return sharedmemory.New()
}

// withSharedMemoryPatch merges patch onto state's current shared memory and
// returns a State partial carrying the result, per the key-wise last-write-
// wins merge every other workflow field already follows.
func withSharedMemoryPatch(state workflow.State, patch *sharedmemory.Memory) workflow.State {
	return workflow.State{sharedMemoryKey: sharedmemory.Merge(sharedMemoryOf(state), patch)}
}
