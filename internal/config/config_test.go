package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "APP_ENV", "LOG_LEVEL", "FRONTEND_URL", "STORAGE_DRIVER",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"MONGO_URI", "MONGO_DB", "FILE_STORE", "UPLOAD_DIR", "MAX_UPLOAD_MB",
		"CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET", "CLOUDINARY_UPLOAD_FOLDER",
		"LOGIN_RATE_LIMIT", "TRUSTED_PROXIES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:3000", cfg.FrontendURL)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, FileStoreLocal, cfg.FileStore)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 0, cfg.LoginRateLimit)
	assert.Empty(t, cfg.TrustedProxies)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "mongo")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("MAX_UPLOAD_MB", "not-a-number")
	t.Setenv("APP_ENV", "production")
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.1, ,192.168.0.0/16")
	t.Setenv("LOGIN_RATE_LIMIT", "5")

	cfg := Load()
	assert.Equal(t, DriverMongo, cfg.StorageDriver)
	assert.Equal(t, 6543, cfg.Postgres.Port)
	assert.Equal(t, 10, cfg.MaxUploadMB)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.TrustedProxies)
	assert.Equal(t, 5, cfg.LoginRateLimit)
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	cfg.StorageDriver = "sqlite"
	cfg.FileStore = FileStoreCloudinary
	cfg.MaxUploadMB = 0
	cfg.LoginRateLimit = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown STORAGE_DRIVER "sqlite"`)
	assert.Contains(t, err.Error(), "cloudinary credentials are required")
	assert.Contains(t, err.Error(), "MAX_UPLOAD_MB")
	assert.Contains(t, err.Error(), "LOGIN_RATE_LIMIT")

	cfg = Load()
	cfg.FileStore = "s3"
	assert.ErrorContains(t, cfg.Validate(), `unknown FILE_STORE "s3"`)

	cfg = Load()
	cfg.FileStore = FileStoreCloudinary
	cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret = "demo", "key", "secret"
	assert.NoError(t, cfg.Validate())
}
