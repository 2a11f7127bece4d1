// Package config loads the orchestrator server's configuration from
// environment variables, optionally seeded from a local .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the fully resolved server configuration.
type Config struct {
	// GRPCAddr is the listen address for the chat ingress service.
	GRPCAddr string
	// HealthAddr is the listen address for the /healthz and /metrics HTTP
	// endpoints, empty disables the HTTP listener.
	HealthAddr string

	// CheckpointBackend selects the checkpoint.Store implementation:
	// "inmem" or "mongo".
	CheckpointBackend string
	MongoURI          string
	MongoDatabase     string

	// ToolServiceHost/Port dial the backend tool service.
	ToolServiceHost string
	ToolServicePort string

	// ModelProvider selects the default LLM provider: "anthropic", "openai",
	// or "bedrock".
	ModelProvider   string
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
	BedrockModelID  string
	BedrockRegion   string

	// RedisURL backs cross-replica interrupt fan-out; empty disables it.
	RedisURL      string
	RedisPassword string

	// TemporalEnabled is read from TEMPORAL_ENABLED. The serve command only
	// logs a warning when it is set; chat turns still run the graphs in
	// direct-execution mode and no Temporal engine is started.
	TemporalEnabled   bool
	TemporalHostPort  string
	TemporalTaskQueue string

	MetricsNamespace string
	ShutdownTimeout  time.Duration
}

// Load reads configuration from the environment, first loading envFile (if
// it exists) into the process environment without overriding variables
// already set. A missing envFile is not an error; only read failures on a
// file that does exist propagate.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	return Config{
		GRPCAddr:   envOr("ORCHESTRATOR_GRPC_ADDR", ":8443"),
		HealthAddr: envOr("ORCHESTRATOR_HEALTH_ADDR", ":8080"),

		CheckpointBackend: envOr("CHECKPOINT_BACKEND", "inmem"),
		MongoURI:          envOr("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:     envOr("MONGO_DATABASE", "orchestrator"),

		ToolServiceHost: envOr("BACKEND_TOOL_SERVICE_HOST", "backend"),
		ToolServicePort: envOr("BACKEND_TOOL_SERVICE_PORT", "50052"),

		ModelProvider:   envOr("MODEL_PROVIDER", "anthropic"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     envOr("OPENAI_MODEL", "gpt-4o"),
		BedrockModelID:  envOr("BEDROCK_MODEL_ID", "anthropic.claude-3-5-sonnet-20241022-v2:0"),
		BedrockRegion:   envOr("BEDROCK_REGION", "us-east-1"),

		RedisURL:      envOr("REDIS_URL", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		TemporalEnabled:   envBoolOr("TEMPORAL_ENABLED", false),
		TemporalHostPort:  envOr("TEMPORAL_HOST_PORT", "localhost:7233"),
		TemporalTaskQueue: envOr("TEMPORAL_TASK_QUEUE", "orchestrator"),

		MetricsNamespace: envOr("METRICS_NAMESPACE", "orchestrator"),
		ShutdownTimeout:  envDurationOr("SHUTDOWN_TIMEOUT", 10*time.Second),
	}, nil
}

func envOr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envBoolOr(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func envDurationOr(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
