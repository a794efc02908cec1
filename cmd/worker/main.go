// Command worker consumes translation.completed events and pre-warms
// the pose metadata cache for the resolved glosses, so pose requests
// that follow a translation hit warm cache entries.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thaisign/thsl-translate/internal/application/poses"
	"github.com/thaisign/thsl-translate/internal/config"
	"github.com/thaisign/thsl-translate/internal/domain/pose"
	"github.com/thaisign/thsl-translate/internal/infrastructure/database/redis"
	"github.com/thaisign/thsl-translate/internal/infrastructure/messaging/kafka"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	"github.com/thaisign/thsl-translate/internal/infrastructure/storage/local"
	"github.com/thaisign/thsl-translate/internal/infrastructure/storage/minio"
)

var (
	// Injected at build time via -ldflags.
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to the configuration file")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("thsl-worker %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "worker: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:            cfg.Log.Level,
		Format:           cfg.Log.Format,
		OutputPaths:      cfg.Log.OutputPaths,
		ErrorOutputPaths: cfg.Log.ErrorOutputPaths,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logging.SetDefault(logger)

	logger.Info("Starting worker",
		logging.String("version", Version),
		logging.String("group", cfg.Kafka.GroupID))

	var cache redis.Cache
	redisClient, err := redis.NewClient(cfg.Redis, logger.Named("redis"))
	if err != nil {
		logger.Warn("Redis unavailable, warm-up results will not be cached", logging.Err(err))
	} else {
		defer redisClient.Close()
		cache = redis.NewCache(redisClient, logger.Named("cache"),
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Redis.DefaultTTL))
	}

	var stores []pose.Store
	minioClient, err := minio.NewClient(cfg.MinIO, logger.Named("minio"))
	if err != nil {
		logger.Warn("MinIO unavailable, warming from local store only", logging.Err(err))
	} else {
		stores = append(stores, minio.NewPoseStore(minioClient, logger.Named("pose-minio")))
	}
	localStore, err := local.NewPoseStore(cfg.Pose.LocalDir, logger.Named("pose-local"))
	if err != nil {
		return fmt.Errorf("open local pose store: %w", err)
	}
	stores = append(stores, localStore)

	poseService := poses.NewService(stores, cache, cfg.Pose.MetaCacheTTL, nil, logger.Named("poses"))

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers:         cfg.Kafka.Brokers,
		GroupID:         cfg.Kafka.GroupID,
		Topics:          []string{kafka.TopicTranslationCompleted},
		AutoOffsetReset: cfg.Kafka.AutoOffsetReset,
		CommitInterval:  cfg.Worker.CommitInterval,
		MaxRetries:      cfg.Worker.MaxRetries,
		RetryBackoff:    cfg.Worker.RetryBackoff,
		DeadLetterTopic: kafka.TopicDeadLetter,
	}, logger.Named("kafka"))
	if err != nil {
		return fmt.Errorf("create consumer: %w", err)
	}

	consumer.Subscribe(kafka.TopicTranslationCompleted, warmPoseMeta(poseService, logger.Named("warmup")))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Shutting down", logging.String("signal", sig.String()))

	cancel()
	if err := consumer.Close(); err != nil {
		return fmt.Errorf("close consumer: %w", err)
	}

	logger.Info("Worker stopped")
	return nil
}

// warmPoseMeta decodes a translation.completed event and caches the
// frame metadata for every pose asset the translation resolved.
func warmPoseMeta(svc poses.Service, logger logging.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg *kafka.Message) error {
		env, err := kafka.MessageToEventEnvelope(msg)
		if err != nil {
			return err
		}

		var payload kafka.TranslationCompletedPayload
		if err := env.DecodePayload(&payload); err != nil {
			return err
		}
		if len(payload.AssetRefs) == 0 {
			return nil
		}

		warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		warmed := svc.Warm(warmCtx, payload.AssetRefs)
		logger.Info("Pose metadata warmed",
			logging.String("request_id", payload.RequestID),
			logging.Int("assets", len(payload.AssetRefs)),
			logging.Int("warmed", warmed))
		return nil
	}
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && path == defaultConfigPath {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}
