package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLegacyEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DB_DSN", "LOG_LEVEL", "LOG_FORMAT", "APP_NAME", ConfigFileEnv} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearLegacyEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "shelters_data.json", cfg.Storage.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoad_FileThenEnvOverrides(t *testing.T) {
	clearLegacyEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "shelters.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  driver: sqlite
  sqlite:
    path: /tmp/regional.db
log:
  level: debug
`), 0o600))

	t.Setenv("SHELTERS_LOG__FORMAT", "json")
	t.Setenv("SHELTERS_TRACING__ENABLED", "true")
	t.Setenv("PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/regional.db", cfg.Storage.SQLite.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestLoad_LegacyDSNSelectsPostgres(t *testing.T) {
	clearLegacyEnv(t)
	t.Setenv("DB_DSN", "postgres://shelters@localhost/shelters")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://shelters@localhost/shelters", cfg.Storage.Postgres.DSN)
}

func TestLoad_PrefixedEnvBeatsLegacy(t *testing.T) {
	clearLegacyEnv(t)
	t.Setenv("DB_DSN", "postgres://shelters@localhost/shelters")
	t.Setenv("PORT", "9090")
	t.Setenv("SHELTERS_STORAGE__DRIVER", "sqlite")
	t.Setenv("SHELTERS_STORAGE__SQLITE__PATH", "/tmp/regional.db")
	t.Setenv("SHELTERS_HTTP__ADDR", ":7070")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/regional.db", cfg.Storage.SQLite.Path)
	assert.Equal(t, ":7070", cfg.HTTP.Addr)
}

func TestValidate_RejectsIncompleteStorage(t *testing.T) {
	cases := []Storage{
		{Driver: DriverS3},
		{Driver: DriverPostgres},
		{Driver: "ftp"},
	}
	for _, st := range cases {
		err := Config{Storage: st}.Validate()
		assert.Error(t, err, "driver %q", st.Driver)
	}
}
