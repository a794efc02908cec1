// Command apiserver runs the ThSL translation HTTP API: Thai text in,
// ordered sign glosses and pose assets out.
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
	"github.com/thaisign/thsl-translate/internal/application/translation"
	"github.com/thaisign/thsl-translate/internal/config"
	"github.com/thaisign/thsl-translate/internal/domain/pose"
	"github.com/thaisign/thsl-translate/internal/infrastructure/database/postgres"
	"github.com/thaisign/thsl-translate/internal/infrastructure/database/postgres/repositories"
	"github.com/thaisign/thsl-translate/internal/infrastructure/database/redis"
	"github.com/thaisign/thsl-translate/internal/infrastructure/messaging/kafka"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/prometheus"
	"github.com/thaisign/thsl-translate/internal/infrastructure/segmenter"
	"github.com/thaisign/thsl-translate/internal/infrastructure/storage/local"
	"github.com/thaisign/thsl-translate/internal/infrastructure/storage/minio"
	httpserver "github.com/thaisign/thsl-translate/internal/interfaces/http"
	"github.com/thaisign/thsl-translate/internal/interfaces/http/handlers"
	"github.com/thaisign/thsl-translate/internal/translate"
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
		fmt.Printf("thsl-apiserver %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
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

	logger.Info("Starting apiserver",
		logging.String("version", Version),
		logging.String("commit", GitCommit),
		logging.Int("port", cfg.Server.Port))

	// Metrics.
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "thsl",
		Subsystem:            "apiserver",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	appMetrics := prometheus.NewAppMetrics(collector)

	// PostgreSQL: dictionary and category-role table.
	conn, err := postgres.NewConnection(cfg.Database, logger.Named("postgres"))
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close()

	if cfg.Database.MigrationPath != "" {
		if err := conn.RunMigrations(cfg.Database.MigrationPath); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	dictRepo := repositories.NewDictionaryRepo(conn, logger.Named("dictionary"))
	roleRepo := repositories.NewCategoryRoleRepo(conn, logger.Named("roles"))

	// Redis: snapshot and pose-meta cache. The service degrades to
	// direct DB lookups when the cache is unreachable at startup.
	var cache redis.Cache
	redisClient, err := redis.NewClient(cfg.Redis, logger.Named("redis"))
	if err != nil {
		logger.Warn("Redis unavailable, running without cache", logging.Err(err))
	} else {
		defer redisClient.Close()
		cache = redis.NewCache(redisClient, logger.Named("cache"),
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Redis.DefaultTTL))
	}

	// Kafka: translation.completed events for the warm-up worker.
	var publisher translation.Publisher
	producer, err := kafka.NewProducer(cfg.Kafka, logger.Named("kafka"))
	if err != nil {
		logger.Warn("Kafka unavailable, translation events disabled", logging.Err(err))
	} else {
		defer producer.Close()
		publisher = producer
		ensureTopics(cfg.Kafka.Brokers, logger)
	}

	// Pose stores: object storage first, local directory as fallback.
	var stores []pose.Store
	minioClient, err := minio.NewClient(cfg.MinIO, logger.Named("minio"))
	if err != nil {
		logger.Warn("MinIO unavailable, serving poses from local store only", logging.Err(err))
		minioClient = nil
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := minioClient.EnsureBucket(ctx); err != nil {
			logger.Warn("Pose bucket check failed", logging.Err(err))
		}
		cancel()
		stores = append(stores, minio.NewPoseStore(minioClient, logger.Named("pose-minio")))
	}
	localStore, err := local.NewPoseStore(cfg.Pose.LocalDir, logger.Named("pose-local"))
	if err != nil {
		return fmt.Errorf("open local pose store: %w", err)
	}
	stores = append(stores, localStore)

	// Segmenter: external service when configured, whitespace otherwise.
	var seg translate.Segmenter
	if cfg.Segmenter.Endpoint != "" {
		seg = segmenter.NewClient(cfg.Segmenter, logger.Named("segmenter"))
	}

	// Role lexicon with optional hot reload.
	lexiconStore, lexiconWatcher, err := buildLexicon(cfg.Lexicon, logger)
	if err != nil {
		return err
	}
	if lexiconWatcher != nil {
		defer lexiconWatcher.Close()
	}

	engine := translate.NewEngine(lexiconStore, translate.DefaultRules(), seg, logger.Named("engine"))

	snapshotLoader := translation.NewSnapshotLoader(dictRepo, roleRepo, cache, cfg.Redis.DefaultTTL, logger.Named("snapshot"))

	poseService := poses.NewService(stores, cache, cfg.Pose.MetaCacheTTL, appMetrics, logger.Named("poses"))

	translationService := translation.NewService(engine, snapshotLoader, dictRepo, seg, translation.Options{
		Poses:     chainStore(stores),
		Publisher: publisher,
		Metrics:   appMetrics,
	}, logger.Named("translation"))

	// Readiness checks per backing component.
	checks := map[string]handlers.HealthCheck{
		"postgres": conn.HealthCheck,
	}
	if redisClient != nil {
		checks["redis"] = redisClient.Ping
	}
	if minioClient != nil {
		checks["minio"] = minioClient.HealthCheck
	}
	if cfg.Segmenter.Endpoint != "" {
		if sc, ok := seg.(*segmenter.Client); ok {
			checks["segmenter"] = sc.Health
		}
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		TranslateHandler: handlers.NewTranslateHandler(translationService, logger.Named("translate")),
		PoseHandler:      handlers.NewPoseHandler(poseService, logger.Named("pose")),
		HealthHandler:    handlers.NewHealthHandler(checks, appMetrics, logger.Named("health")),
		MetricsCollector: collector,
		Metrics:          appMetrics,
		Logger:           logger.Named("http"),
		Mode:             cfg.Server.Mode,
	})

	server := httpserver.NewServer(cfg.Server, router, logger.Named("server"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case sig := <-quit:
		logger.Info("Shutting down", logging.String("signal", sig.String()))
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Apiserver stopped")
	return nil
}

// loadConfig reads the config file, falling back to environment-only
// configuration when the default file does not exist.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && path == defaultConfigPath {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}

func buildLexicon(cfg config.LexiconConfig, logger logging.Logger) (*translate.LexiconStore, *translate.LexiconWatcher, error) {
	log := logger.Named("lexicon")
	if cfg.Path == "" {
		return translate.NewLexiconStore(nil, log), nil, nil
	}

	if _, err := os.Stat(cfg.Path); os.IsNotExist(err) {
		log.Warn("Lexicon file missing, using built-in lexicon", logging.String("path", cfg.Path))
		return translate.NewLexiconStore(nil, log), nil, nil
	}
	lex, err := translate.LoadLexicon(cfg.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("load lexicon %s: %w", cfg.Path, err)
	}
	store := translate.NewLexiconStore(lex, log)

	if !cfg.WatchReload {
		return store, nil, nil
	}
	watcher, err := translate.WatchLexicon(cfg.Path, store, log)
	if err != nil {
		return nil, nil, fmt.Errorf("watch lexicon %s: %w", cfg.Path, err)
	}
	return store, watcher, nil
}

func ensureTopics(brokers []string, logger logging.Logger) {
	manager, err := kafka.NewTopicManager(brokers, logger.Named("topics"))
	if err != nil {
		logger.Warn("Topic manager unavailable", logging.Err(err))
		return
	}
	defer manager.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := manager.EnsureDefaultTopics(ctx); err != nil {
		logger.Warn("Failed to ensure topics", logging.Err(err))
	}
}
