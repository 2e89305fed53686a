package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fittrack.toml")
	err := os.WriteFile(path, []byte(`
Env = "test"

[Database]
Host = "db.internal"
IOTimeout = "2s"

[Leaderboard]
CacheTTL = "5m"
`), 0600)
	require.NoError(t, err)

	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("KAFKA_ADDRS", "k1:9092,k2:9092")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "test", cfg.Env)
	require.Equal(t, "db.internal", cfg.Database.Host)
	require.Equal(t, "secret", cfg.Database.Password)
	require.Equal(t, 2*time.Second, cfg.Database.IOTimeout.Duration)
	require.Equal(t, 5*time.Minute, cfg.Leaderboard.CacheTTL.Duration)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Addrs)

	// Untouched sections keep their defaults.
	require.Equal(t, 3, cfg.Retry.MaxAttempts)
	require.Equal(t, "America/New_York", cfg.Leaderboard.Timezone)
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[Retry]\nBackoff = \"soon\"\n"), 0600))

	_, err := Load(path)
	require.Error(t, err)
}
