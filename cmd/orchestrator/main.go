// Command orchestrator runs the multi-agent chat orchestration service: it
// dials the backend tool service and an LLM provider, compiles the org and
// research workflow graphs, and serves chat turns over gRPC.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
