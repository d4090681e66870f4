package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DOCSTORE_DRIVER", "")
	t.Setenv("STORAGE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DocStoreMongo, cfg.DocStore.Driver)
	assert.Equal(t, StorageLocal, cfg.Storage.Driver)
	assert.Equal(t, time.Hour, cfg.Storage.PresignExpiry)
	assert.Equal(t, "/uploads", cfg.Storage.Local.URLPrefix)
	assert.Equal(t, 15*time.Minute, cfg.DocStore.CacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "S3")
	t.Setenv("AWS_S3_BUCKET", "art")
	t.Setenv("STORAGE_PRESIGN_EXPIRY", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("PUBLIC_BASE_URL", "https://api.example/")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageS3, cfg.Storage.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Storage.PresignExpiry)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORSOrigins)
	assert.Equal(t, "https://api.example", cfg.App.PublicBaseURL)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"unknown docstore", map[string]string{"DOCSTORE_DRIVER": "couch"}, "DOCSTORE_DRIVER"},
		{"unknown storage", map[string]string{"STORAGE_DRIVER": "ftp"}, "STORAGE_DRIVER"},
		{"s3 without bucket", map[string]string{"STORAGE_DRIVER": "s3", "AWS_S3_BUCKET": ""}, "AWS_S3_BUCKET"},
		{"production minio default secret", map[string]string{
			"APP_ENV": "production", "STORAGE_DRIVER": "minio", "MINIO_SECRET_KEY": "",
		}, "MINIO_SECRET_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)

	t.Setenv("DB_CONNECT_TIMEOUT", "soon")
	_, err = LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_CONNECT_TIMEOUT")
}
