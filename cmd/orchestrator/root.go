package main

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=v1.0.0".
var Version = "dev"

var envFile string

var rootCmd = &cobra.Command{
	Use:   "orchestrator",
	Short: "Multi-agent chat orchestration service",
	Long:  "orchestrator routes chat turns to specialized agent workflows (org, research), persists conversation state as checkpoints, and exposes the result over gRPC.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to a .env file to load before reading configuration (missing file is not an error)")
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("orchestrator " + Version)
		},
	}
}
