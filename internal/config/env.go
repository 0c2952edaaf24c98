package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type BaseEnv struct {
	Env      string `envconfig:"ENV" default:"local"`
	HTTPHost string `envconfig:"HTTP_HOST" default:""`
	HTTPPort string `envconfig:"HTTP_PORT" default:"3100"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"debug"`
	APIKey   string `envconfig:"API_KEY" required:"true"`
}

const (
	StorageLocal  = "local"
	StorageS3     = "s3"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type StorageEnv struct {
	Type    string `envconfig:"STORAGE_TYPE" default:"local"`
	BaseDir string `envconfig:"STORAGE_BASE_DIR" default:".labelguild/data"`
	// S3 settings (used when Type == "s3")
	S3Bucket   string `envconfig:"S3_BUCKET"`
	S3Prefix   string `envconfig:"S3_PREFIX" default:"labelguild/"`
	S3Region   string `envconfig:"S3_REGION" default:"ap-northeast-1"`
	S3Endpoint string `envconfig:"S3_ENDPOINT"`
	// Redis backs storage when Type == "redis" and carries sync signals
	// whenever it is set.
	RedisURL string `envconfig:"REDIS_URL"`
	TasksKey string `envconfig:"TASKS_KEY" default:"annotator-assigned-tasks"`
}

type SyncEnv struct {
	Channel      string        `envconfig:"SYNC_CHANNEL" default:"labelguild:tasks"`
	PollInterval time.Duration `envconfig:"SYNC_POLL_INTERVAL" default:"2s"`
}

type WorkspaceEnv struct {
	PersistDrafts bool `envconfig:"WORKSPACE_PERSIST_DRAFTS" default:"false"`
	// SessionIdleTimeout of 0 keeps sessions until they are closed.
	SessionIdleTimeout time.Duration `envconfig:"WORKSPACE_SESSION_IDLE_TIMEOUT" default:"30m"`
	EventLogDir        string        `envconfig:"EVENT_LOG_DIR"`
}

type Env struct {
	BaseEnv
	StorageEnv
	SyncEnv
	WorkspaceEnv
}

const namespace = "LABELGUILD"

func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

func (e *Env) Validate() error {
	switch e.StorageEnv.Type {
	case StorageLocal, StorageMemory:
	case StorageS3:
		if e.S3Bucket == "" {
			return fmt.Errorf("LABELGUILD_S3_BUCKET is required for storage type %q", e.StorageEnv.Type)
		}
	case StorageRedis:
		if e.RedisURL == "" {
			return fmt.Errorf("LABELGUILD_REDIS_URL is required for storage type %q", e.StorageEnv.Type)
		}
	default:
		return fmt.Errorf("unknown storage type %q", e.StorageEnv.Type)
	}
	if e.PollInterval <= 0 {
		return fmt.Errorf("LABELGUILD_SYNC_POLL_INTERVAL must be positive, got %s", e.PollInterval)
	}
	if e.SessionIdleTimeout < 0 {
		return fmt.Errorf("LABELGUILD_WORKSPACE_SESSION_IDLE_TIMEOUT must not be negative, got %s", e.SessionIdleTimeout)
	}
	return nil
}

func (e *BaseEnv) SlogLevel() slog.Level {
	if e == nil {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return slog.LevelDebug
	}
	return level
}

func (e *BaseEnv) IsLocal() bool {
	return e.Env == "local"
}
