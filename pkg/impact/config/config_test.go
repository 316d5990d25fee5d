package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AMA_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "ama_impact.db", cfg.DatabaseFile)
	assert.Equal(t, 480*time.Minute, cfg.TokenExpiry)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.IsProduction())
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env.test")
	content := "DATABASE_FILE=test_impact.db\nACCESS_TOKEN_EXPIRE_MINUTES=15\nCORS_ORIGINS=http://a.test, http://b.test\nADMIN_EMAIL=root@impact.test\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	t.Setenv("AMA_ENV_FILE", envFile)

	// godotenv does not override variables that already exist, so clean up
	// after ourselves for the rest of the package tests.
	for _, key := range []string{"DATABASE_FILE", "ACCESS_TOKEN_EXPIRE_MINUTES", "CORS_ORIGINS", "ADMIN_EMAIL"} {
		key := key
		t.Cleanup(func() { os.Unsetenv(key) })
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test_impact.db", cfg.DatabaseFile)
	assert.Equal(t, 15*time.Minute, cfg.TokenExpiry)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "root@impact.test", cfg.AdminEmail)
}

func TestValidate(t *testing.T) {
	base := Config{
		AppEnv:         "development",
		DatabaseDriver: "sqlite",
		DatabaseFile:   "x.db",
		SecretKey:      DefaultSecretKey,
		TokenExpiry:    time.Hour,
	}

	ok := base
	assert.NoError(t, ok.Validate())

	prod := base
	prod.AppEnv = "production"
	assert.Error(t, prod.Validate(), "default secret must be rejected in production")

	pg := base
	pg.DatabaseDriver = "postgres"
	assert.Error(t, pg.Validate(), "postgres requires DATABASE_URL")
	pg.DatabaseURL = "postgres://localhost/impact"
	assert.NoError(t, pg.Validate())

	unknown := base
	unknown.DatabaseDriver = "oracle"
	assert.Error(t, unknown.Validate())
}
