package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is populated from environment variables (optionally loaded from .env by the caller).
type Config struct {
	App      AppConfig
	DocStore DocStoreConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Worker   WorkerConfig
}

type AppConfig struct {
	Name          string
	Environment   string // development, staging, production
	Port          string
	Version       string
	LogLevel      string
	PublicBaseURL string
	CORSOrigins   []string
}

const (
	DocStoreMongo    = "mongo"
	DocStorePostgres = "postgres"
)

type DocStoreConfig struct {
	Driver   string
	CacheTTL time.Duration
	// CacheEnabled wraps repositories with the Redis read-through cache.
	CacheEnabled bool
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
	PoolSize int
}

const (
	StorageLocal = "local"
	StorageMinIO = "minio"
	StorageS3    = "s3"
)

type StorageConfig struct {
	Driver        string
	PresignExpiry time.Duration
	Local         LocalStorageConfig
	MinIO         MinIOConfig
	S3            S3Config
}

type LocalStorageConfig struct {
	Root      string // directory served at /uploads
	URLPrefix string
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string // optional, enables path-style addressing
}

type WorkerConfig struct {
	Enabled       bool
	Concurrency   int
	ReconcileCron string
	// OrphanGrace keeps freshly uploaded blobs out of the reconcile sweep.
	OrphanGrace time.Duration
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:          getEnv("APP_NAME", "HTC Studio API"),
			Environment:   getEnv("APP_ENV", "development"),
			Port:          getEnv("APP_PORT", "8080"),
			Version:       getEnv("APP_VERSION", "1.0.0"),
			LogLevel:      getEnv("LOG_LEVEL", "info"),
			PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
			CORSOrigins:   getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		},
		DocStore: DocStoreConfig{
			Driver:       strings.ToLower(getEnv("DOCSTORE_DRIVER", DocStoreMongo)),
			CacheTTL:     getEnvDuration("DOCSTORE_CACHE_TTL", 15*time.Minute),
			CacheEnabled: getEnvBool("DOCSTORE_CACHE_ENABLED", true),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGO_DATABASE", "htc_studio"),
			ConnectTimeout: getEnvDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
			MaxRetries:     getEnvInt("MONGO_MAX_RETRIES", 5),
			RetryDelay:     getEnvDuration("MONGO_RETRY_DELAY", time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			PoolSize: getEnvInt("REDIS_POOL_SIZE", 10),
		},
		Storage: StorageConfig{
			Driver:        strings.ToLower(getEnv("STORAGE_DRIVER", StorageLocal)),
			PresignExpiry: getEnvDuration("STORAGE_PRESIGN_EXPIRY", time.Hour),
			Local: LocalStorageConfig{
				Root:      getEnv("STORAGE_LOCAL_ROOT", "./uploads"),
				URLPrefix: getEnv("STORAGE_LOCAL_URL_PREFIX", "/uploads"),
			},
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
				AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
				SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
				Bucket:    getEnv("MINIO_BUCKET", "htc-studio"),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
			S3: S3Config{
				Region:    getEnv("AWS_REGION", "us-east-1"),
				Bucket:    getEnv("AWS_S3_BUCKET", ""),
				AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
				SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
				Endpoint:  getEnv("AWS_S3_ENDPOINT", ""),
			},
		},
		Worker: WorkerConfig{
			Enabled:       getEnvBool("WORKER_ENABLED", true),
			Concurrency:   getEnvInt("WORKER_CONCURRENCY", 10),
			ReconcileCron: getEnv("WORKER_RECONCILE_CRON", "0 * * * *"),
			OrphanGrace:   getEnvDuration("WORKER_ORPHAN_GRACE", time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the combinations Load cannot express with defaults.
func (c *Config) Validate() error {
	switch c.DocStore.Driver {
	case DocStoreMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return fmt.Errorf("MONGO_URI and MONGO_DATABASE are required for the mongo driver")
		}
	case DocStorePostgres:
	default:
		return fmt.Errorf("unknown DOCSTORE_DRIVER %q", c.DocStore.Driver)
	}

	switch c.Storage.Driver {
	case StorageLocal:
		if c.Storage.Local.Root == "" {
			return fmt.Errorf("STORAGE_LOCAL_ROOT must be set for local storage")
		}
	case StorageMinIO:
		if c.Storage.MinIO.Endpoint == "" || c.Storage.MinIO.Bucket == "" {
			return fmt.Errorf("MINIO_ENDPOINT and MINIO_BUCKET are required for minio storage")
		}
	case StorageS3:
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("AWS_S3_BUCKET is required for s3 storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.Storage.PresignExpiry <= 0 {
		return fmt.Errorf("STORAGE_PRESIGN_EXPIRY must be positive")
	}

	if c.App.Environment == "production" && c.Storage.Driver == StorageMinIO &&
		c.Storage.MinIO.SecretKey == "minioadmin" {
		return fmt.Errorf("MINIO_SECRET_KEY must be set in production")
	}

	return nil
}

func (c *Config) IsProduction() bool { return c.App.Environment == "production" }

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
