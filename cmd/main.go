package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Drivers
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	// Instrumentation
	"github.com/exaring/otelpgx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	// Interne
	"github.com/ranjansharma1412/funAIconnectBackend/config"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/adapters/primary/rest"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/adapters/secondary/eventbroker"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/adapters/secondary/media"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/adapters/secondary/repository"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/adapters/secondary/security"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/services"
)

func main() {
	// 1. Config & Logger
	cfg := config.Load()
	initLogger(cfg)
	slog.Info("🚀 Starting FunAIConnect Backend", "env", cfg.Env, "port", cfg.HTTPPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Télémétrie (Tracing)
	tp, err := initTracer(ctx, cfg)
	if err != nil {
		slog.Error("Failed to init tracer", "error", err)
	} else {
		defer func() { _ = tp.Shutdown(context.Background()) }()
	}

	// 3. Infrastructure: Base de données (Postgres)
	dbConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		slog.Error("Unable to parse DB config", "error", err)
		os.Exit(1)
	}
	dbConfig.ConnConfig.Tracer = otelpgx.NewTracer()

	dbPool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := repository.EnsureSchema(ctx, dbPool); err != nil {
		slog.Error("Unable to ensure schema", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ Connected to Postgres")

	// 4. Infrastructure: Event Broker (NATS JetStream)
	broker, err := eventbroker.NewNatsBroker(cfg.NatsUrl)
	if err != nil {
		slog.Error("Unable to connect to NATS", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ Connected to NATS")

	// 5. Adapters secondaires
	userRepo := repository.NewUserRepo(dbPool)
	friendRepo := repository.NewFriendRepo(dbPool)
	postRepo := repository.NewPostRepo(dbPool)
	commentRepo := repository.NewCommentRepo(dbPool)
	likeRepo := repository.NewLikeRepo(dbPool)

	hasher := security.NewArgon2Hasher(nil)
	tokens := security.NewJWTProvider(cfg.JWTSecret)
	generator := media.NewGenerator("/static/uploads")

	// 6. Core (Domain Logic)
	relationshipSvc := services.NewRelationshipService(friendRepo, userRepo, broker)
	engagementSvc := services.NewEngagementService(likeRepo, postRepo, broker)
	feedSvc := services.NewFeedService(postRepo, commentRepo, userRepo, engagementSvc, broker, cfg.DefaultPageSize, cfg.MaxPageSize)
	identitySvc := services.NewIdentityService(userRepo, hasher, tokens)

	// 7. Adapter primaire (REST)
	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers := rest.NewHandlers(relationshipSvc, engagementSvc, feedSvc, identitySvc, tokens, generator)
	router := rest.NewRouter(handlers)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 8. Démarrage + Graceful Shutdown
	go func() {
		slog.Info("📡 HTTP server listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
	slog.Info("👋 Server exited")
}

func initLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.Env == "local" {
		opts.Level = slog.LevelDebug
	}
	var handler slog.Handler
	if cfg.Env == "local" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func initTracer(ctx context.Context, cfg config.Config) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OtelEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, _ := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(rest.ServiceName),
			semconv.DeploymentEnvironmentKey.String(cfg.Env),
		),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, nil
}
