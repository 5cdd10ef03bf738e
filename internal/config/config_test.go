package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postmarkit/internal/config"
	"github.com/dmitrymomot/postmarkit/pkg/postmark"
	"github.com/dmitrymomot/postmarkit/pkg/suppression"
)

// Environment-mutating tests cannot run in parallel.

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, postmark.DefaultBaseURL, cfg.Postmark.BaseURL)
	assert.Equal(t, postmark.DefaultMessageStream, cfg.Postmark.MessageStream)
	assert.Equal(t, postmark.DefaultTimeout, cfg.Postmark.Timeout)
	assert.Equal(t, suppression.DefaultSeedSchedule, cfg.Seed.Schedule)
	assert.Equal(t, 5*time.Minute, cfg.Seed.Timeout)
	assert.Equal(t, "postmarkit", cfg.Cache.Prefix)
	assert.Zero(t, cfg.Cache.TTL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, slog.LevelWarn, cfg.Sentry.MinLevel)
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("POSTMARKIT_POSTMARK_SERVER_TOKEN", "server")
	t.Setenv("POSTMARKIT_POSTMARK_ACCOUNT_TOKEN", "account")
	t.Setenv("POSTMARKIT_POSTMARK_TIMEOUT", "5s")
	t.Setenv("POSTMARKIT_REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("POSTMARKIT_CACHE_TTL", "1h")
	t.Setenv("POSTMARKIT_SEED_SCHEDULE", "*/15 * * * *")
	t.Setenv("POSTMARKIT_SENTRY_MIN_LEVEL", "error")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "server", cfg.Postmark.ServerToken)
	assert.Equal(t, "account", cfg.Postmark.AccountToken)
	assert.Equal(t, 5*time.Second, cfg.Postmark.Timeout)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Redis.URL)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "*/15 * * * *", cfg.Seed.Schedule)
	assert.Equal(t, slog.LevelError, cfg.Sentry.MinLevel)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := []byte("postmark:\n  server_token: from-file\n  message_stream: broadcast\nhealth:\n  addr: \":8081\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "postmarkit.yaml"), yaml, 0o600))
	t.Setenv("POSTMARKIT_POSTMARK_SERVER_TOKEN", "from-env")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Postmark.ServerToken)
	assert.Equal(t, "broadcast", cfg.Postmark.MessageStream)
	assert.Equal(t, ":8081", cfg.Health.Addr)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
