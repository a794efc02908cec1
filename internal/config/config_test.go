package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config that passes Validate, for mutation in tests.
func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Database.User = "thsl"
	return cfg
}

func TestValidateOK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "bad server mode",
			mutate:  func(c *Config) { c.Server.Mode = "prod" },
			wantErr: "server.mode",
		},
		{
			name:    "missing db host",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantErr: "database.host",
		},
		{
			name:    "missing db user",
			mutate:  func(c *Config) { c.Database.User = "" },
			wantErr: "database.user",
		},
		{
			name:    "zero max open conns",
			mutate:  func(c *Config) { c.Database.MaxOpenConns = 0 },
			wantErr: "database.max_open_conns",
		},
		{
			name:    "missing redis addr",
			mutate:  func(c *Config) { c.Redis.Addr = "" },
			wantErr: "redis.addr",
		},
		{
			name:    "negative redis db",
			mutate:  func(c *Config) { c.Redis.DB = -1 },
			wantErr: "redis.db",
		},
		{
			name:    "no kafka brokers",
			mutate:  func(c *Config) { c.Kafka.Brokers = nil },
			wantErr: "kafka.brokers",
		},
		{
			name:    "missing kafka group",
			mutate:  func(c *Config) { c.Kafka.GroupID = "" },
			wantErr: "kafka.group_id",
		},
		{
			name:    "missing minio bucket",
			mutate:  func(c *Config) { c.MinIO.Bucket = "" },
			wantErr: "minio.bucket",
		},
		{
			name: "segmenter endpoint without timeout",
			mutate: func(c *Config) {
				c.Segmenter.Endpoint = "http://segmenter:8000"
				c.Segmenter.Timeout = 0
			},
			wantErr: "segmenter.timeout",
		},
		{
			name:    "missing pose dir",
			mutate:  func(c *Config) { c.Pose.LocalDir = "" },
			wantErr: "pose.local_dir",
		},
		{
			name:    "zero worker concurrency",
			mutate:  func(c *Config) { c.Worker.Concurrency = 0 },
			wantErr: "worker.concurrency",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: "log.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "text" },
			wantErr: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
