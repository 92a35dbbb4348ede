package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 1000, cfg.FetchChunkSize)
	assert.Equal(t, 4, cfg.FetchParallelism)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, cfg, GetConfig())
}

func TestLoadConfigFromYAMLWithEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repairwip.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_dsn: /data/mirror.db
listen_addr: ":9090"
fetch_chunk_size: 5000
fetch_parallelism: 2
summary_schedule: " 0 * * * * "
`), 0o644))
	t.Setenv("REPAIRWIP_LISTEN_ADDR", ":7070")
	t.Setenv("REPAIRWIP_FETCH_PARALLELISM", "8")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/mirror.db", cfg.DBDSN)
	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Equal(t, 1000, cfg.FetchChunkSize, "chunk size is capped at the bind parameter limit")
	assert.Equal(t, 8, cfg.FetchParallelism)
	assert.Equal(t, "0 * * * *", cfg.SummarySchedule)
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fetch_chunk_size: [1, 2"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)

	t.Setenv("REPAIRWIP_FETCH_CHUNK_SIZE", "lots")
	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPathHonoursEnv(t *testing.T) {
	t.Setenv("REPAIRWIP_CONFIG", "/etc/repairwip.yaml")
	assert.Equal(t, "/etc/repairwip.yaml", Path())
}
