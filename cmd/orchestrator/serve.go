package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	mongooptions "go.mongodb.org/mongo-driver/v2/mongo/options"
	"google.golang.org/grpc"

	"github.com/adamsih300u/orchestrator/internal/config"
	"github.com/adamsih300u/orchestrator/runtime/checkpoint"
	"github.com/adamsih300u/orchestrator/runtime/checkpoint/inmem"
	checkpointmongo "github.com/adamsih300u/orchestrator/runtime/checkpoint/mongo"
	"github.com/adamsih300u/orchestrator/runtime/intent"
	"github.com/adamsih300u/orchestrator/runtime/interrupt"
	"github.com/adamsih300u/orchestrator/runtime/model"
	"github.com/adamsih300u/orchestrator/runtime/model/anthropic"
	"github.com/adamsih300u/orchestrator/runtime/model/bedrock"
	"github.com/adamsih300u/orchestrator/runtime/model/openai"
	"github.com/adamsih300u/orchestrator/runtime/org"
	"github.com/adamsih300u/orchestrator/runtime/orchestrator"
	"github.com/adamsih300u/orchestrator/runtime/research"
	"github.com/adamsih300u/orchestrator/runtime/telemetry"
	"github.com/adamsih300u/orchestrator/runtime/toolclient"
	"github.com/adamsih300u/orchestrator/runtime/workflow"
	"github.com/adamsih300u/orchestrator/transport/grpcserver"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC chat ingress server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := telemetry.NewSlogLogger(slog.Default())
	registry := prometheus.NewRegistry()
	metrics := telemetry.NewPrometheusMetrics(registry)

	checkpointer, err := buildCheckpointer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("build checkpoint store: %w", err)
	}

	tools, err := toolclient.Dial(ctx, toolclient.Options{Host: cfg.ToolServiceHost, Port: cfg.ToolServicePort})
	if err != nil {
		return fmt.Errorf("dial tool service: %w", err)
	}
	defer tools.Close()

	gateway, err := buildGateway(ctx, cfg)
	if err != nil {
		return fmt.Errorf("build model gateway: %w", err)
	}
	classifier := intent.New(gateway, "")

	orgGraph := org.Build(checkpointer, org.Deps{Gateway: gateway, Tools: tools})
	researchGraph := research.Build(checkpointer, research.Deps{Gateway: gateway, Tools: tools})

	svc := orchestrator.NewService(checkpointer, classifier, map[string]*workflow.Graph{
		"org":      orgGraph,
		"research": researchGraph,
		"chat":     researchGraph,
	}, "chat")
	svc.Logger = logger

	if cfg.TemporalEnabled {
		logger.Warn(ctx, "TEMPORAL_ENABLED is set but durable hosting is not wired into the chat ingress path yet; running graphs in direct-execution mode")
	}

	var fanout *interrupt.Fanout
	if cfg.RedisURL != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURL, Password: cfg.RedisPassword})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn(ctx, "redis unavailable, interrupt fan-out disabled", "error", err)
		} else {
			fanout = interrupt.NewFanout(rdb)
		}
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.GRPCAddr, err)
	}

	grpcServer := grpc.NewServer()
	server := grpcserver.New(svc, logger, metrics, fanout)
	grpcServer.RegisterService(grpcserver.ServiceDesc(), server)

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "starting orchestrator gRPC server", "addr", cfg.GRPCAddr)
		errCh <- grpcServer.Serve(lis)
	}()

	var httpServer *http.Server
	if cfg.HealthAddr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		httpServer = &http.Server{Addr: cfg.HealthAddr, Handler: mux}
		go func() {
			logger.Info(ctx, "starting health/metrics server", "addr", cfg.HealthAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- fmt.Errorf("health/metrics server: %w", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		logger.Info(ctx, "shutting down")
		grpcServer.GracefulStop()
		if httpServer != nil {
			_ = httpServer.Close()
		}
		return nil
	}
}

func buildCheckpointer(ctx context.Context, cfg config.Config) (checkpoint.Store, error) {
	switch cfg.CheckpointBackend {
	case "mongo":
		client, err := mongodriver.Connect(ctx, mongooptions.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		return checkpointmongo.New(ctx, checkpointmongo.Options{Client: client, Database: cfg.MongoDatabase})
	case "inmem", "":
		return inmem.New(), nil
	default:
		return nil, fmt.Errorf("unknown checkpoint backend %q", cfg.CheckpointBackend)
	}
}

func buildGateway(ctx context.Context, cfg config.Config) (*model.Gateway, error) {
	providers := map[string]model.Provider{}

	if cfg.AnthropicAPIKey != "" {
		p, err := anthropic.NewFromAPIKey(cfg.AnthropicAPIKey, anthropic.Options{
			DefaultModel: cfg.AnthropicModel,
			HighModel:    cfg.AnthropicModel,
			SmallModel:   cfg.AnthropicModel,
		})
		if err != nil {
			return nil, fmt.Errorf("build anthropic provider: %w", err)
		}
		providers["anthropic"] = p
	}

	if cfg.OpenAIAPIKey != "" {
		p, err := openai.NewFromAPIKey(cfg.OpenAIAPIKey, openai.Options{
			DefaultModel: cfg.OpenAIModel,
			SmallModel:   cfg.OpenAIModel,
		})
		if err != nil {
			return nil, fmt.Errorf("build openai provider: %w", err)
		}
		providers["openai"] = p
	}

	if cfg.ModelProvider == "bedrock" || len(providers) == 0 {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.BedrockRegion))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		p, err := bedrock.New(bedrockruntime.NewFromConfig(awsCfg), bedrock.Options{DefaultModelID: cfg.BedrockModelID})
		if err != nil {
			return nil, fmt.Errorf("build bedrock provider: %w", err)
		}
		providers["bedrock"] = p
	}

	defaultProvider := cfg.ModelProvider
	if _, ok := providers[defaultProvider]; !ok {
		for name := range providers {
			defaultProvider = name
			break
		}
	}
	return model.NewGateway(providers, defaultProvider)
}
