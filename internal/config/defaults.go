package config

import "time"

const (
	DefaultServerPort = 8080
	DefaultServerMode = "release"

	DefaultDBHost       = "localhost"
	DefaultDBPort       = 5432
	DefaultDBName       = "thsl"
	DefaultDBMaxConns   = 25
	DefaultDBSSLMode    = "disable"

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "thsl:"
	DefaultRedisTTL       = 10 * time.Minute

	DefaultKafkaBroker  = "localhost:9092"
	DefaultKafkaGroupID = "thsl-worker"

	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMinIOBucket   = "thsl-poses"

	DefaultSegmenterTimeout = 5 * time.Second
	DefaultSegmenterEngine  = "newmm"

	DefaultLexiconPath = "configs/lexicon.yaml"

	DefaultPoseLocalDir      = "poses"
	DefaultPoseMetaCacheSize = 1024
	DefaultPoseMetaCacheTTL  = time.Hour

	DefaultWorkerConcurrency = 4

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsPath = "/metrics"
)

// ApplyDefaults fills zero-value fields in cfg. Explicitly set values always
// win; call this after unmarshalling and before Validate.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = DefaultDBMaxConns
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = DefaultDBSSLMode
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = time.Hour
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = DefaultRedisTTL
	}

	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.AutoOffsetReset == "" {
		cfg.Kafka.AutoOffsetReset = "earliest"
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = 10 * time.Second
	}

	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}
	if cfg.MinIO.PresignExpiry == 0 {
		cfg.MinIO.PresignExpiry = 15 * time.Minute
	}

	if cfg.Segmenter.Timeout == 0 {
		cfg.Segmenter.Timeout = DefaultSegmenterTimeout
	}
	if cfg.Segmenter.Engine == "" {
		cfg.Segmenter.Engine = DefaultSegmenterEngine
	}

	if cfg.Lexicon.Path == "" {
		cfg.Lexicon.Path = DefaultLexiconPath
	}

	if cfg.Pose.LocalDir == "" {
		cfg.Pose.LocalDir = DefaultPoseLocalDir
	}
	if cfg.Pose.MetaCacheSize == 0 {
		cfg.Pose.MetaCacheSize = DefaultPoseMetaCacheSize
	}
	if cfg.Pose.MetaCacheTTL == 0 {
		cfg.Pose.MetaCacheTTL = DefaultPoseMetaCacheTTL
	}

	if cfg.Worker.Concurrency == 0 {
		cfg.Worker.Concurrency = DefaultWorkerConcurrency
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}
	if cfg.Worker.RetryBackoff == 0 {
		cfg.Worker.RetryBackoff = 2 * time.Second
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}
