package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenUnset(t *testing.T) {
	clearOrchestratorEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8443", cfg.GRPCAddr)
	assert.Equal(t, "inmem", cfg.CheckpointBackend)
	assert.Equal(t, "anthropic", cfg.ModelProvider)
	assert.False(t, cfg.TemporalEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearOrchestratorEnv(t)
	t.Setenv("ORCHESTRATOR_GRPC_ADDR", ":9999")
	t.Setenv("CHECKPOINT_BACKEND", "mongo")
	t.Setenv("TEMPORAL_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.GRPCAddr)
	assert.Equal(t, "mongo", cfg.CheckpointBackend)
	assert.True(t, cfg.TemporalEnabled)
}

func TestLoad_MissingEnvFileIsNotAnError(t *testing.T) {
	clearOrchestratorEnv(t)
	_, err := Load("/nonexistent/.env")
	assert.NoError(t, err)
}

func clearOrchestratorEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ORCHESTRATOR_GRPC_ADDR", "CHECKPOINT_BACKEND", "TEMPORAL_ENABLED", "MODEL_PROVIDER",
	} {
		v, ok := os.LookupEnv(k)
		os.Unsetenv(k)
		if ok {
			t.Cleanup(func() { os.Setenv(k, v) })
		}
	}
}
